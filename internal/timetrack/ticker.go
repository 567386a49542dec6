package timetrack

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Ticker arms a recurring callback. The returned cancel func must be called
// to release it and is safe to call more than once.
type Ticker interface {
	Every(d time.Duration, fn func()) (cancel func(), err error)
}

// CronTicker runs callbacks on a shared cron scheduler.
type CronTicker struct {
	cron *cron.Cron
}

func NewCronTicker(loc *time.Location) *CronTicker {
	if loc == nil {
		loc = time.Local
	}
	return &CronTicker{cron: cron.New(cron.WithLocation(loc), cron.WithSeconds())}
}

func (t *CronTicker) Start() {
	t.cron.Start()
}

// Stop halts the scheduler and waits for running callbacks.
func (t *CronTicker) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
}

// Entries reports how many callbacks are armed.
func (t *CronTicker) Entries() int {
	return len(t.cron.Entries())
}

func (t *CronTicker) Every(d time.Duration, fn func()) (func(), error) {
	seconds := int(d.Seconds())
	if seconds <= 0 {
		return nil, fmt.Errorf("interval must be at least one second, got %s", d)
	}
	id, err := t.cron.AddFunc(fmt.Sprintf("@every %ds", seconds), fn)
	if err != nil {
		return nil, err
	}
	var once sync.Once
	return func() {
		once.Do(func() { t.cron.Remove(id) })
	}, nil
}

// ManualTicker fires only when Tick is called.
type ManualTicker struct {
	mu     sync.Mutex
	next   int
	active map[int]func()
}

func NewManualTicker() *ManualTicker {
	return &ManualTicker{active: make(map[int]func())}
}

func (t *ManualTicker) Every(_ time.Duration, fn func()) (func(), error) {
	t.mu.Lock()
	id := t.next
	t.next++
	t.active[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.active, id)
		t.mu.Unlock()
	}, nil
}

// Tick fires every armed callback n times.
func (t *ManualTicker) Tick(n int) {
	for i := 0; i < n; i++ {
		t.mu.Lock()
		fns := make([]func(), 0, len(t.active))
		for _, fn := range t.active {
			fns = append(fns, fn)
		}
		t.mu.Unlock()
		for _, fn := range fns {
			fn()
		}
	}
}

// Active reports how many callbacks are armed.
func (t *ManualTicker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active)
}
