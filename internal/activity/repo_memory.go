package activity

import (
	"sync"
	"time"

	"github.com/sahuAhmadzafar/PMT/internal/clock"
)

// Repository stores activity events.
type Repository interface {
	Record(user string, action Action, target string) Event
	Recent(limit int) []Event
	Since(t time.Time, actions ...Action) []Event
}

// MemoryRepository keeps events in memory in insertion order.
type MemoryRepository struct {
	mu     sync.RWMutex
	clock  clock.Clock
	events []Event
	nextID int
}

func NewMemoryRepository(c clock.Clock) *MemoryRepository {
	if c == nil {
		c = clock.Real{}
	}
	return &MemoryRepository{clock: c, nextID: 1}
}

// FromSeed builds a repository whose events are backdated by each seed's age.
// Seeds are listed newest first.
func FromSeed(c clock.Clock, seeds []Seed) *MemoryRepository {
	r := NewMemoryRepository(c)
	now := r.clock.Now()
	for i := len(seeds) - 1; i >= 0; i-- {
		s := seeds[i]
		r.append(s.User, s.Action, s.Target, now.Add(-time.Duration(s.AgeMinutes)*time.Minute))
	}
	return r
}

func (r *MemoryRepository) Record(user string, action Action, target string) Event {
	return r.append(user, action, target, r.clock.Now())
}

func (r *MemoryRepository) append(user string, action Action, target string, ts time.Time) Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := Event{
		ID:        r.nextID,
		User:      user,
		Action:    action,
		Target:    target,
		Timestamp: ts,
	}
	r.events = append(r.events, e)
	r.nextID++
	return e
}

// Recent returns up to limit events, newest first. limit <= 0 means all.
func (r *MemoryRepository) Recent(limit int) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.events)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Event, 0, n)
	for i := len(r.events) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.events[i])
	}
	return out
}

func (r *MemoryRepository) Since(t time.Time, actions ...Action) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filter := make(map[Action]bool, len(actions))
	for _, a := range actions {
		filter[a] = true
	}

	result := make([]Event, 0)
	for _, e := range r.events {
		if e.Timestamp.Before(t) {
			continue
		}
		if len(actions) > 0 && !filter[e.Action] {
			continue
		}
		result = append(result, e)
	}
	return result
}
