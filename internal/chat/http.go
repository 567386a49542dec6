package chat

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
	onSend          func(Channel, Message)
}

func NewHandler(repo *MemoryRepo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) SetSessionResolver(fn func(*http.Request) string) {
	h.sessionResolver = fn
}

// SetOnSend registers a hook run after a message is accepted.
func (h *Handler) SetOnSend(fn func(Channel, Message)) {
	h.onSend = fn
}

func (h *Handler) RoomFor(r *http.Request) *Room {
	id := "default"
	if h.sessionResolver != nil {
		if s := h.sessionResolver(r); s != "" {
			id = s
		}
	}
	return h.repo.Load(id)
}

// POST /chat/{channel}/messages (form: content)
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	channelID := r.PathValue("channel")
	if err := r.ParseForm(); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	room := h.RoomFor(r)
	msg, err := room.Send(channelID, r.PostFormValue("content"))
	wantsJSON := strings.Contains(r.Header.Get("Accept"), "application/json")

	switch {
	case errors.Is(err, ErrUnknownChannel):
		writeErr(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, ErrEmptyMessage):
		if wantsJSON {
			writeErr(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	case err != nil:
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	default:
		if h.onSend != nil {
			ch, _ := room.channel(channelID)
			h.onSend(ch, msg)
		}
		if wantsJSON {
			writeJSON(w, http.StatusCreated, msg)
			return
		}
	}
	http.Redirect(w, r, "/chat?channel="+url.QueryEscape(channelID), http.StatusSeeOther)
}

func (r *Room) channel(id string) (Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.channelLocked(id)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
