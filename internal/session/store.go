package session

import (
	"sort"
	"sync"
	"time"

	"github.com/sahuAhmadzafar/PMT/internal/clock"
)

// Store records when each session was last seen so idle ones can be released.
type Store struct {
	mu       sync.Mutex
	clock    clock.Clock
	seen     map[string]time.Time
	keep     func(id string) bool
	onExpire []func(id string)
}

func NewStore(c clock.Clock) *Store {
	if c == nil {
		c = clock.Real{}
	}
	return &Store{clock: c, seen: make(map[string]time.Time)}
}

// Touch marks the session as active now.
func (s *Store) Touch(id string) {
	if id == "" {
		return
	}
	now := s.clock.Now()
	s.mu.Lock()
	s.seen[id] = now
	s.mu.Unlock()
}

// SetKeep registers a check that holds a session open while it returns true,
// e.g. while a page of the session is still connected.
func (s *Store) SetKeep(fn func(id string) bool) {
	s.mu.Lock()
	s.keep = fn
	s.mu.Unlock()
}

// OnExpire registers a hook run with the id of every expired session.
func (s *Store) OnExpire(fn func(id string)) {
	s.mu.Lock()
	s.onExpire = append(s.onExpire, fn)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

// Expire forgets every session not seen for longer than idle and runs the
// expiry hooks for each one. It returns the expired ids in order.
func (s *Store) Expire(idle time.Duration) []string {
	now := s.clock.Now()

	s.mu.Lock()
	var expired []string
	for id, at := range s.seen {
		if now.Sub(at) <= idle {
			continue
		}
		if s.keep != nil && s.keep(id) {
			s.seen[id] = now
			continue
		}
		expired = append(expired, id)
		delete(s.seen, id)
	}
	hooks := append([]func(string){}, s.onExpire...)
	s.mu.Unlock()

	sort.Strings(expired)
	for _, id := range expired {
		for _, fn := range hooks {
			fn(id)
		}
	}
	return expired
}
