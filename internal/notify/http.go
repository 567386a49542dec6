package notify

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// GET /notifications
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

// POST /notifications/read/{id}
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.store.MarkAsRead(r.PathValue("id"))
	h.respond(w, r)
}

// POST /notifications/read-all
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	h.store.MarkAllAsRead()
	h.respond(w, r)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, http.StatusOK, h.store.Snapshot())
		return
	}
	http.Redirect(w, r, back(r), http.StatusSeeOther)
}

// back is the local page the form was posted from, or the dashboard.
func back(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "/notifications") {
		return "/dashboard"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
