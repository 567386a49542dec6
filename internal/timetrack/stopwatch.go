package timetrack

import (
	"errors"
	"strings"
	"sync"
	"time"
)

var (
	ErrTaskRequired = errors.New("task is required")
	ErrTracking     = errors.New("already tracking")
	ErrNotTracking  = errors.New("not tracking")
	ErrClosed       = errors.New("stopwatch closed")
)

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

type Status struct {
	State   State  `json:"state"`
	Elapsed int    `json:"elapsed"`
	Display string `json:"display"`
	Task    string `json:"task"`
	Project string `json:"project"`
}

// Stopwatch counts whole seconds while running. The tick is armed only in the
// running state and is released on pause, stop and close.
type Stopwatch struct {
	mu       sync.Mutex
	ticker   Ticker
	interval time.Duration
	onTick   func(Status)

	state   State
	elapsed int
	task    string
	project string
	cancel  func()
	gen     int
	closed  bool
}

func NewStopwatch(t Ticker, interval time.Duration, onTick func(Status)) *Stopwatch {
	if interval <= 0 {
		interval = time.Second
	}
	return &Stopwatch{ticker: t, interval: interval, onTick: onTick, state: StateIdle}
}

// Start begins tracking task. The task name must not be blank.
func (s *Stopwatch) Start(task, project string) error {
	task = strings.TrimSpace(task)
	if task == "" {
		return ErrTaskRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.state != StateIdle {
		return ErrTracking
	}
	if err := s.armLocked(); err != nil {
		return err
	}
	s.state = StateRunning
	s.task = task
	s.project = project
	return nil
}

// TogglePause suspends a running stopwatch or resumes a paused one.
// Elapsed time is kept across the pause.
func (s *Stopwatch) TogglePause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateRunning:
		s.releaseLocked()
		s.state = StatePaused
		return nil
	case StatePaused:
		if s.closed {
			return ErrClosed
		}
		if err := s.armLocked(); err != nil {
			return err
		}
		s.state = StateRunning
		return nil
	default:
		return ErrNotTracking
	}
}

// Stop ends tracking, resets the counter and clears the task.
// It returns the status as it was just before stopping.
func (s *Stopwatch) Stop() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	last := s.statusLocked()
	s.releaseLocked()
	s.state = StateIdle
	s.elapsed = 0
	s.task = ""
	return last
}

// Close releases the tick for good; the hosting view is gone.
func (s *Stopwatch) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseLocked()
	s.closed = true
	if s.state == StateRunning {
		s.state = StatePaused
	}
}

func (s *Stopwatch) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *Stopwatch) statusLocked() Status {
	return Status{
		State:   s.state,
		Elapsed: s.elapsed,
		Display: FormatDuration(s.elapsed),
		Task:    s.task,
		Project: s.project,
	}
}

func (s *Stopwatch) armLocked() error {
	s.gen++
	gen := s.gen
	cancel, err := s.ticker.Every(s.interval, func() { s.tick(gen) })
	if err != nil {
		return err
	}
	s.cancel = cancel
	return nil
}

func (s *Stopwatch) releaseLocked() {
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// tick ignores callbacks from a released arm.
func (s *Stopwatch) tick(gen int) {
	s.mu.Lock()
	if gen != s.gen || s.state != StateRunning {
		s.mu.Unlock()
		return
	}
	s.elapsed++
	st := s.statusLocked()
	fn := s.onTick
	s.mu.Unlock()

	if fn != nil {
		fn(st)
	}
}
