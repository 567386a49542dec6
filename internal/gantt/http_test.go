package gantt

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	seed, err := Build(seedNodes(), time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	h := NewHandler(NewMemoryRepo(seed), december(), 20)
	h.SetSessionResolver(func(r *http.Request) string { return r.Header.Get("X-Session") })
	return h
}

func TestToggle_JSON(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/gantt/toggle/2", nil)
	req.SetPathValue("id", "2")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Session", "a")
	rec := httptest.NewRecorder()
	h.Toggle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Toggled  bool `json:"toggled"`
		Expanded bool `json:"expanded"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Toggled || !body.Expanded {
		t.Fatalf("expected node 2 expanded, got %+v", body)
	}

	// Another session still sees the seed state.
	other := httptest.NewRequest(http.MethodGet, "/gantt/rows", nil)
	other.Header.Set("X-Session", "b")
	if exp, _ := h.ForestFor(other).Expanded("2"); exp {
		t.Fatalf("session b should not see session a's toggle")
	}
}

func TestToggle_FormRedirects(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/gantt/toggle/unknown", nil)
	req.SetPathValue("id", "unknown")
	rec := httptest.NewRecorder()
	h.Toggle(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/gantt" {
		t.Fatalf("expected redirect to /gantt, got %q", loc)
	}
}

func TestRows_JSON(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/gantt/rows", nil)
	rec := httptest.NewRecorder()
	h.Rows(rec, req)

	var body struct {
		DaysInView int   `json:"daysInView"`
		Rows       []Row `json:"rows"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.DaysInView != 31 || len(body.Rows) != 5 {
		t.Fatalf("unexpected rows payload: %d days, %d rows", body.DaysInView, len(body.Rows))
	}
}
