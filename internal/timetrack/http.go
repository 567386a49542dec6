package timetrack

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
	onStop          func(Status)
}

func NewHandler(repo *MemoryRepo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) SetSessionResolver(fn func(*http.Request) string) {
	h.sessionResolver = fn
}

// SetOnStop registers a hook run with the final status of a stopped session.
func (h *Handler) SetOnStop(fn func(Status)) {
	h.onStop = fn
}

// StopwatchFor returns the session's stopwatch.
func (h *Handler) StopwatchFor(r *http.Request) *Stopwatch {
	id := "default"
	if h.sessionResolver != nil {
		if s := h.sessionResolver(r); s != "" {
			id = s
		}
	}
	return h.repo.Load(id)
}

// GET /time-tracking/state
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.StopwatchFor(r).Status())
}

// POST /time-tracking/start (form: task, project)
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.respond(w, r, http.StatusBadRequest, err)
		return
	}
	err := h.StopwatchFor(r).Start(r.PostFormValue("task"), r.PostFormValue("project"))
	switch {
	case errors.Is(err, ErrTaskRequired):
		h.respond(w, r, http.StatusUnprocessableEntity, err)
	case errors.Is(err, ErrTracking):
		h.respond(w, r, http.StatusConflict, err)
	case err != nil:
		h.respond(w, r, http.StatusInternalServerError, err)
	default:
		h.respond(w, r, http.StatusOK, nil)
	}
}

// POST /time-tracking/pause
func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	if err := h.StopwatchFor(r).TogglePause(); err != nil {
		h.respond(w, r, http.StatusConflict, err)
		return
	}
	h.respond(w, r, http.StatusOK, nil)
}

// POST /time-tracking/stop
func (h *Handler) Stop(w http.ResponseWriter, r *http.Request) {
	last := h.StopwatchFor(r).Stop()
	if h.onStop != nil && last.State != StateIdle {
		h.onStop(last)
	}
	h.respond(w, r, http.StatusOK, nil)
}

// respond answers script callers with JSON and form posts with a redirect.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, code int, err error) {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		if err != nil {
			writeJSON(w, code, map[string]any{"error": err.Error()})
			return
		}
		writeJSON(w, code, h.StopwatchFor(r).Status())
		return
	}
	target := "/time-tracking"
	if err != nil {
		target += "?error=" + url.QueryEscape(err.Error())
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
