package notify

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahuAhmadzafar/PMT/internal/clock"
)

func newTestStore() (*Store, *clock.Fake) {
	c := clock.NewFake(time.Date(2025, time.December, 15, 9, 0, 0, 0, time.UTC))
	initial := FromSeed(c, []Seed{
		{ID: "1", Title: "Task Assigned", Message: "assigned", Kind: KindInfo, AgeMinutes: 5},
		{ID: "2", Title: "Deadline Approaching", Message: "due soon", Kind: KindWarning, AgeMinutes: 30},
	})
	return NewStore(c, initial), c
}

func TestStore_SeedIsUnread(t *testing.T) {
	s, c := newTestStore()
	assert.Equal(t, 2, s.UnreadCount())
	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, c.Now().Add(-5*time.Minute), list[0].Timestamp)
}

func TestStore_AddPrepends(t *testing.T) {
	s, c := newTestStore()
	c.Advance(time.Minute)

	n := s.Add("Task Moved", "moved to Done", KindSuccess)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Read)
	assert.Equal(t, c.Now(), n.Timestamp)

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, n.ID, list[0].ID)
	assert.Equal(t, 3, s.UnreadCount())
}

func TestStore_MarkAsRead(t *testing.T) {
	s, _ := newTestStore()

	assert.True(t, s.MarkAsRead("2"))
	assert.Equal(t, 1, s.UnreadCount())

	assert.False(t, s.MarkAsRead("missing"))
	assert.Equal(t, 1, s.UnreadCount())

	s.MarkAllAsRead()
	assert.Equal(t, 0, s.UnreadCount())
	for _, n := range s.List() {
		assert.True(t, n.Read)
	}
}

func TestStore_ObserversSeeEveryChange(t *testing.T) {
	s, _ := newTestStore()

	var seen []int
	unsubscribe := s.Subscribe(func(snap Snapshot) {
		seen = append(seen, snap.UnreadCount)
	})

	s.Add("a", "b", KindInfo)
	s.MarkAsRead("1")
	s.MarkAsRead("missing")
	s.MarkAllAsRead()
	assert.Equal(t, []int{3, 2, 0}, seen)

	unsubscribe()
	s.Add("c", "d", KindError)
	assert.Equal(t, []int{3, 2, 0}, seen)
}

func TestStore_ListIsACopy(t *testing.T) {
	s, _ := newTestStore()
	list := s.List()
	list[0].Read = true
	assert.Equal(t, 2, s.UnreadCount())
}

func TestHandler_MarkRead(t *testing.T) {
	s, _ := newTestStore()
	h := NewHandler(s)

	req := httptest.NewRequest(http.MethodPost, "/notifications/read/1", nil)
	req.Header.Set("Accept", "application/json")
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()
	h.MarkRead(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"unreadCount":1`)

	req = httptest.NewRequest(http.MethodPost, "/notifications/read-all", nil)
	req.Header.Set("Accept", "application/json")
	rec = httptest.NewRecorder()
	h.MarkAllRead(rec, req)
	assert.Contains(t, rec.Body.String(), `"unreadCount":0`)
}

func TestHandler_FormPostRedirectsBack(t *testing.T) {
	s, _ := newTestStore()
	h := NewHandler(s)

	req := httptest.NewRequest(http.MethodPost, "/notifications/read-all", nil)
	req.Header.Set("Referer", "http://example.com/kanban?x=1")
	rec := httptest.NewRecorder()
	h.MarkAllRead(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/kanban?x=1", rec.Header().Get("Location"))
	assert.Equal(t, 0, s.UnreadCount())

	rec = httptest.NewRecorder()
	h.MarkAllRead(rec, httptest.NewRequest(http.MethodPost, "/notifications/read-all", nil))
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}
