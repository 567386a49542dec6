package kanban

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestHandler(t *testing.T) (*Handler, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo(testBoard(t))
	h := NewHandler(repo)
	h.SetSessionResolver(func(r *http.Request) string { return r.Header.Get("X-Session") })
	return h, repo
}

func doCmd(t *testing.T, h *Handler, session, body string) (*httptest.ResponseRecorder, CommandResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/kanban/cmd", bytes.NewBufferString(body))
	req.Header.Set("X-Session", session)
	rec := httptest.NewRecorder()
	h.Command(rec, req)

	var resp CommandResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return rec, resp
}

func TestCommand_DragAndDrop(t *testing.T) {
	h, repo := newTestHandler(t)

	rec, resp := doCmd(t, h, "s1", `{"cmd":"drag.begin","args":{"taskId":"1","columnId":"todo"}}`)
	if rec.Code != http.StatusOK || !resp.OK {
		t.Fatalf("drag.begin failed: %d %+v", rec.Code, resp)
	}
	if resp.State == nil || resp.State.Drag == nil || resp.State.Drag.TaskID != "1" {
		t.Fatalf("expected active drag in state, got %+v", resp.State)
	}

	rec, resp = doCmd(t, h, "s1", `{"cmd":"drag.over"}`)
	if rec.Code != http.StatusOK || resp.Moved {
		t.Fatalf("drag.over should not move: %d %+v", rec.Code, resp)
	}

	rec, resp = doCmd(t, h, "s1", `{"cmd":"drag.drop","args":{"columnId":"done"}}`)
	if rec.Code != http.StatusOK || !resp.Moved {
		t.Fatalf("expected move, got %d %+v", rec.Code, resp)
	}
	if resp.State.Drag != nil {
		t.Fatalf("expected drag cleared after drop")
	}

	m, _ := repo.Load("s1")
	done, _ := m.Board().Column("done")
	if len(done.Tasks) != 1 || done.Tasks[0].ID != "1" {
		t.Fatalf("expected task 1 in done, got %+v", done.Tasks)
	}

	// Other sessions keep the seed board.
	other, _ := repo.Load("s2")
	otherDone, _ := other.Board().Column("done")
	if len(otherDone.Tasks) != 0 {
		t.Fatalf("session s2 should be untouched, got %+v", otherDone.Tasks)
	}
}

func TestCommand_ResetRestoresSeed(t *testing.T) {
	h, repo := newTestHandler(t)
	doCmd(t, h, "s1", `{"cmd":"drag.begin","args":{"taskId":"1","columnId":"todo"}}`)
	doCmd(t, h, "s1", `{"cmd":"drag.drop","args":{"columnId":"done"}}`)

	rec, _ := doCmd(t, h, "s1", `{"cmd":"board.reset"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	m, _ := repo.Load("s1")
	todo, _ := m.Board().Column("todo")
	if len(todo.Tasks) != 2 {
		t.Fatalf("expected seed todo column after reset, got %+v", todo.Tasks)
	}
}

func TestCommand_Errors(t *testing.T) {
	h, _ := newTestHandler(t)

	rec, resp := doCmd(t, h, "s1", `{"cmd":"drag.fling"}`)
	if rec.Code != http.StatusBadRequest || resp.Error != "unknown command: drag.fling" {
		t.Fatalf("unexpected: %d %+v", rec.Code, resp)
	}

	rec, resp = doCmd(t, h, "s1", `{"cmd":"drag.begin","args":{"taskId":"1"}}`)
	if rec.Code != http.StatusBadRequest || resp.Error != "missing required field: columnId" {
		t.Fatalf("unexpected: %d %+v", rec.Code, resp)
	}

	req := httptest.NewRequest(http.MethodGet, "/kanban/cmd", nil)
	rr := httptest.NewRecorder()
	h.Command(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestGetState(t *testing.T) {
	h, _ := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/kanban/state", nil)
	rec := httptest.NewRecorder()
	h.GetState(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp StateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Columns) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(resp.Columns))
	}
}

// singleBoard serves one machine to every session and resets to a fixed board.
type singleBoard struct {
	m    *Machine
	seed Board
}

func (s *singleBoard) Load(string) (*Machine, error) { return s.m, nil }
func (s *singleBoard) Discard(string)                 {}
func (s *singleBoard) Seed() Board                    { return s.seed.Clone() }

func TestCommand_ResetUsesRepoSeed(t *testing.T) {
	seed := testBoard(t)
	repo := &singleBoard{m: NewMachine(seed.Clone()), seed: seed}
	h := NewHandler(repo)

	doCmd(t, h, "", `{"cmd":"drag.begin","args":{"taskId":"1","columnId":"todo"}}`)
	doCmd(t, h, "", `{"cmd":"drag.drop","args":{"columnId":"done"}}`)
	if done, _ := repo.m.Board().Column("done"); len(done.Tasks) != 1 {
		t.Fatalf("expected the move to land, got %+v", done.Tasks)
	}

	doCmd(t, h, "", `{"cmd":"board.reset"}`)
	todo, _ := repo.m.Board().Column("todo")
	want, _ := seed.Column("todo")
	if len(todo.Tasks) != len(want.Tasks) || todo.Tasks[0].ID != "1" {
		t.Fatalf("reset should restore the repo seed, got %+v", todo.Tasks)
	}
}

func TestMemoryRepo_DiscardStartsOver(t *testing.T) {
	_, repo := newTestHandler(t)
	m, _ := repo.Load("s1")
	m.BeginDrag("1", "todo")
	m.Drop("done")

	repo.Discard("s1")
	fresh, _ := repo.Load("s1")
	if fresh == m {
		t.Fatalf("expected a new machine after discard")
	}
	if done, _ := fresh.Board().Column("done"); len(done.Tasks) != 0 {
		t.Fatalf("expected seed board, got %+v", done.Tasks)
	}
}
