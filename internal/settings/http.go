package settings

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

type Handler struct {
	repo            *MemoryRepo
	sessionResolver func(*http.Request) string
}

func NewHandler(repo *MemoryRepo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) SetSessionResolver(fn func(*http.Request) string) {
	h.sessionResolver = fn
}

func (h *Handler) SettingsFor(r *http.Request) *Settings {
	id := "default"
	if h.sessionResolver != nil {
		if s := h.sessionResolver(r); s != "" {
			id = s
		}
	}
	return h.repo.Load(id)
}

// POST /settings/profile (form: name, email, role)
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	err := h.SettingsFor(r).SaveProfile(Profile{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
		Role:  r.PostFormValue("role"),
	})
	if err != nil {
		redirect(w, r, "?section=Profile&error="+url.QueryEscape(err.Error()))
		return
	}
	redirect(w, r, "?section=Profile&saved=1")
}

// POST /settings/automation (form: rule=<id> for each checked box)
func (h *Handler) SaveAutomation(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	h.SettingsFor(r).ApplyRules(r.PostForm["rule"])
	redirect(w, r, "?section=Automation&saved=1")
}

// POST /settings/automation/{id}/toggle
func (h *Handler) ToggleRule(w http.ResponseWriter, r *http.Request) {
	rule, err := h.SettingsFor(r).Toggle(r.PathValue("id"))
	if errors.Is(err, ErrUnknownRule) {
		writeErr(w, http.StatusNotFound, err.Error())
		return
	}
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, http.StatusOK, rule)
		return
	}
	redirect(w, r, "?section=Automation")
}

func redirect(w http.ResponseWriter, r *http.Request, query string) {
	http.Redirect(w, r, "/settings"+query, http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
