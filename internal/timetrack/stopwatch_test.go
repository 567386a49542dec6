package timetrack

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestStopwatch_TicksOnlyWhileRunning(t *testing.T) {
	tk := NewManualTicker()
	sw := NewStopwatch(tk, time.Second, nil)

	tk.Tick(3)
	assert.Equal(t, 0, sw.Status().Elapsed)
	assert.Equal(t, 0, tk.Active())

	require.NoError(t, sw.Start("Write report", "Website Redesign"))
	assert.Equal(t, 1, tk.Active())

	tk.Tick(5)
	st := sw.Status()
	assert.Equal(t, StateRunning, st.State)
	assert.Equal(t, 5, st.Elapsed)
	assert.Equal(t, "0:05", st.Display)
	assert.Equal(t, "Write report", st.Task)
}

func TestStopwatch_PauseKeepsElapsedAndReleasesTick(t *testing.T) {
	tk := NewManualTicker()
	sw := NewStopwatch(tk, time.Second, nil)
	require.NoError(t, sw.Start("task", ""))
	tk.Tick(4)

	require.NoError(t, sw.TogglePause())
	assert.Equal(t, StatePaused, sw.Status().State)
	assert.Equal(t, 0, tk.Active())

	tk.Tick(10)
	assert.Equal(t, 4, sw.Status().Elapsed)

	require.NoError(t, sw.TogglePause())
	assert.Equal(t, 1, tk.Active())
	tk.Tick(2)
	assert.Equal(t, 6, sw.Status().Elapsed)
}

func TestStopwatch_StopResets(t *testing.T) {
	tk := NewManualTicker()
	sw := NewStopwatch(tk, time.Second, nil)
	require.NoError(t, sw.Start("task", "proj"))
	tk.Tick(7)

	last := sw.Stop()
	assert.Equal(t, 7, last.Elapsed)
	assert.Equal(t, "task", last.Task)

	st := sw.Status()
	assert.Equal(t, StateIdle, st.State)
	assert.Equal(t, 0, st.Elapsed)
	assert.Empty(t, st.Task)
	assert.Equal(t, 0, tk.Active())
}

func TestStopwatch_StopFromPaused(t *testing.T) {
	tk := NewManualTicker()
	sw := NewStopwatch(tk, time.Second, nil)
	require.NoError(t, sw.Start("task", ""))
	require.NoError(t, sw.TogglePause())

	sw.Stop()
	assert.Equal(t, StateIdle, sw.Status().State)
	assert.Equal(t, 0, tk.Active())
}

func TestStopwatch_CloseReleasesTick(t *testing.T) {
	tk := NewManualTicker()
	sw := NewStopwatch(tk, time.Second, nil)
	require.NoError(t, sw.Start("task", ""))
	tk.Tick(1)

	sw.Close()
	assert.Equal(t, 0, tk.Active())
	tk.Tick(3)
	assert.Equal(t, 1, sw.Status().Elapsed)

	assert.ErrorIs(t, sw.TogglePause(), ErrClosed)
	sw.Stop()
	assert.ErrorIs(t, sw.Start("again", ""), ErrClosed)
}

func TestStopwatch_StartValidation(t *testing.T) {
	tk := NewManualTicker()
	sw := NewStopwatch(tk, time.Second, nil)

	assert.ErrorIs(t, sw.Start("   ", "proj"), ErrTaskRequired)
	assert.Equal(t, StateIdle, sw.Status().State)
	assert.Equal(t, 0, tk.Active())

	require.NoError(t, sw.Start("task", ""))
	assert.ErrorIs(t, sw.Start("other", ""), ErrTracking)
	assert.Equal(t, 1, tk.Active())
}

func TestStopwatch_TogglePauseWhenIdle(t *testing.T) {
	sw := NewStopwatch(NewManualTicker(), time.Second, nil)
	assert.ErrorIs(t, sw.TogglePause(), ErrNotTracking)
}

func TestStopwatch_OnTickObserver(t *testing.T) {
	tk := NewManualTicker()
	var seen []int
	sw := NewStopwatch(tk, time.Second, func(st Status) { seen = append(seen, st.Elapsed) })
	require.NoError(t, sw.Start("task", ""))
	tk.Tick(3)
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestStopwatch_CronTickerNoLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	tk := NewCronTicker(time.UTC)
	tk.Start()

	sw := NewStopwatch(tk, time.Second, nil)
	require.NoError(t, sw.Start("task", ""))
	assert.Equal(t, 1, tk.Entries())

	require.NoError(t, sw.TogglePause())
	assert.Equal(t, 0, tk.Entries())

	require.NoError(t, sw.TogglePause())
	assert.Equal(t, 1, tk.Entries())

	sw.Stop()
	assert.Equal(t, 0, tk.Entries())

	tk.Stop()
}

func TestCronTicker_RejectsSubSecond(t *testing.T) {
	tk := NewCronTicker(nil)
	_, err := tk.Every(500*time.Millisecond, func() {})
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{
		0:     "0:00",
		5:     "0:05",
		65:    "1:05",
		600:   "10:00",
		3600:  "1:00:00",
		3725:  "1:02:05",
		36000: "10:00:00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatDuration(in), "FormatDuration(%d)", in)
	}
}

func TestMemoryRepo_PerSessionAndCloseAll(t *testing.T) {
	tk := NewManualTicker()
	repo := NewMemoryRepo(tk, time.Second)

	var ticks []string
	repo.SetOnTick(func(sessionID string, _ Status) { ticks = append(ticks, sessionID) })

	a := repo.Load("a")
	b := repo.Load("b")
	assert.Same(t, a, repo.Load("a"))
	assert.NotSame(t, a, b)

	require.NoError(t, a.Start("task", ""))
	tk.Tick(1)
	assert.Equal(t, []string{"a"}, ticks)

	require.NoError(t, b.Start("task", ""))
	repo.CloseAll()
	assert.Equal(t, 0, tk.Active())
}

func TestHandler_StartPauseStop(t *testing.T) {
	tk := NewManualTicker()
	h := NewHandler(NewMemoryRepo(tk, time.Second))

	var stopped []Status
	h.SetOnStop(func(st Status) { stopped = append(stopped, st) })

	form := url.Values{"task": {"Design review"}, "project": {"Mobile App"}}
	req := httptest.NewRequest(http.MethodPost, "/time-tracking/start", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.Start(rr, req)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/time-tracking", rr.Header().Get("Location"))

	tk.Tick(2)

	req = httptest.NewRequest(http.MethodPost, "/time-tracking/pause", nil)
	req.Header.Set("Accept", "application/json")
	rr = httptest.NewRecorder()
	h.Pause(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"state":"paused"`)
	assert.Contains(t, rr.Body.String(), `"elapsed":2`)

	req = httptest.NewRequest(http.MethodPost, "/time-tracking/stop", nil)
	rr = httptest.NewRecorder()
	h.Stop(rr, req)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	require.Len(t, stopped, 1)
	assert.Equal(t, "Design review", stopped[0].Task)
	assert.Equal(t, 2, stopped[0].Elapsed)

	// stopping an idle stopwatch does not fire the hook
	h.Stop(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/time-tracking/stop", nil))
	assert.Len(t, stopped, 1)
}

func TestHandler_StartWithoutTask(t *testing.T) {
	h := NewHandler(NewMemoryRepo(NewManualTicker(), time.Second))

	req := httptest.NewRequest(http.MethodPost, "/time-tracking/start", strings.NewReader("task="))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	rr := httptest.NewRecorder()
	h.Start(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "task is required")
}
