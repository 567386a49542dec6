package kanban

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Handler serves the board's drag-and-drop event surface.
type Handler struct {
	repo            Repo
	sessionResolver func(*http.Request) string
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) SetSessionResolver(fn func(*http.Request) string) {
	h.sessionResolver = fn
}

func (h *Handler) sessionFromRequest(r *http.Request) string {
	if h.sessionResolver != nil {
		if id := h.sessionResolver(r); id != "" {
			return id
		}
	}
	return "default"
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(out)
}

// StateResponse is the response for GET /kanban/state.
type StateResponse struct {
	Columns []Column `json:"columns"`
	Drag    *Drag    `json:"drag,omitempty"`
}

func stateOf(m *Machine) StateResponse {
	resp := StateResponse{Columns: m.Board().Columns}
	if d, ok := m.Dragging(); ok {
		resp.Drag = &d
	}
	return resp
}

// GET /kanban/state
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	m, err := h.repo.Load(h.sessionFromRequest(r))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stateOf(m))
}

// CommandRequest is the request body for POST /kanban/cmd.
type CommandRequest struct {
	Cmd  string         `json:"cmd"`
	Args map[string]any `json:"args"`
}

// CommandResponse is the response for POST /kanban/cmd.
type CommandResponse struct {
	OK    bool           `json:"ok"`
	State *StateResponse `json:"state,omitempty"`
	Moved bool           `json:"moved,omitempty"`
	Error string         `json:"error,omitempty"`
}

// POST /kanban/cmd
func (h *Handler) Command(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req CommandRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	m, err := h.repo.Load(h.sessionFromRequest(r))
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	moved, err := h.executeCommand(m, req.Cmd, req.Args)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, CommandResponse{OK: false, Error: err.Error()})
		return
	}

	state := stateOf(m)
	writeJSON(w, http.StatusOK, CommandResponse{OK: true, State: &state, Moved: moved})
}

func (h *Handler) executeCommand(m *Machine, cmd string, args map[string]any) (bool, error) {
	switch cmd {
	case "drag.begin":
		taskID, err := getString(args, "taskId")
		if err != nil {
			return false, err
		}
		columnID, err := getString(args, "columnId")
		if err != nil {
			return false, err
		}
		m.BeginDrag(TaskID(taskID), ColumnID(columnID))
		return false, nil
	case "drag.over":
		m.DragOver()
		return false, nil
	case "drag.drop":
		columnID, err := getString(args, "columnId")
		if err != nil {
			return false, err
		}
		return m.Drop(ColumnID(columnID)), nil
	case "board.reset":
		m.Reset(h.repo.Seed())
		return false, nil
	default:
		return false, fmt.Errorf("unknown command: %s", cmd)
	}
}

// Helper to get string from args
func getString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing required field: %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %s must be a string", key)
	}
	return s, nil
}
