package gantt

import (
	"encoding/json"
	"net/http"
	"strings"
)

type Handler struct {
	repo            *MemoryRepo
	window          Window
	indentPx        int
	sessionResolver func(*http.Request) string
}

func NewHandler(repo *MemoryRepo, window Window, indentPx int) *Handler {
	return &Handler{repo: repo, window: window, indentPx: indentPx}
}

func (h *Handler) SetSessionResolver(fn func(*http.Request) string) {
	h.sessionResolver = fn
}

func (h *Handler) Window() Window { return h.window }

func (h *Handler) IndentPx() int { return h.indentPx }

// ForestFor returns the session's forest.
func (h *Handler) ForestFor(r *http.Request) *Forest {
	id := "default"
	if h.sessionResolver != nil {
		if s := h.sessionResolver(r); s != "" {
			id = s
		}
	}
	return h.repo.Load(id)
}

// GET /gantt/rows
func (h *Handler) Rows(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"daysInView": h.window.Days,
		"rows":       h.ForestFor(r).Rows(h.window, h.indentPx),
	})
}

// POST /gantt/toggle/{id}
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := TaskID(r.PathValue("id"))
	f := h.ForestFor(r)
	toggled := f.Toggle(id)

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		expanded, _ := f.Expanded(id)
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":       true,
			"toggled":  toggled,
			"expanded": expanded,
		})
		return
	}
	http.Redirect(w, r, "/gantt", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
