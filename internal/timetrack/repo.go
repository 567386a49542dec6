package timetrack

import (
	"sync"
	"time"
)

// MemoryRepo keeps one stopwatch per session.
type MemoryRepo struct {
	mu       sync.Mutex
	ticker   Ticker
	interval time.Duration
	onTick   func(sessionID string, st Status)
	watches  map[string]*Stopwatch
}

func NewMemoryRepo(t Ticker, interval time.Duration) *MemoryRepo {
	return &MemoryRepo{
		ticker:   t,
		interval: interval,
		watches:  make(map[string]*Stopwatch),
	}
}

// SetOnTick registers the observer every new stopwatch reports ticks to.
func (r *MemoryRepo) SetOnTick(fn func(sessionID string, st Status)) {
	r.mu.Lock()
	r.onTick = fn
	r.mu.Unlock()
}

func (r *MemoryRepo) Load(sessionID string) *Stopwatch {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sw, ok := r.watches[sessionID]; ok {
		return sw
	}
	var fn func(Status)
	if r.onTick != nil {
		onTick := r.onTick
		fn = func(st Status) { onTick(sessionID, st) }
	}
	sw := NewStopwatch(r.ticker, r.interval, fn)
	r.watches[sessionID] = sw
	return sw
}

// Discard closes and forgets a session's stopwatch.
func (r *MemoryRepo) Discard(sessionID string) {
	r.mu.Lock()
	sw, ok := r.watches[sessionID]
	delete(r.watches, sessionID)
	r.mu.Unlock()

	if ok {
		sw.Close()
	}
}

// CloseAll releases every armed tick. Used on shutdown.
func (r *MemoryRepo) CloseAll() {
	r.mu.Lock()
	watches := make([]*Stopwatch, 0, len(r.watches))
	for _, sw := range r.watches {
		watches = append(watches, sw)
	}
	r.mu.Unlock()

	for _, sw := range watches {
		sw.Close()
	}
}
