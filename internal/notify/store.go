// Package notify holds the dashboard's notification list and the observers
// watching it. A Store is constructed once at startup and passed to whatever
// needs it.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sahuAhmadzafar/PMT/internal/clock"
)

type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Kind      Kind      `json:"type"`
	Read      bool      `json:"read"`
	Timestamp time.Time `json:"timestamp"`
}

// Snapshot is what observers receive after each change.
type Snapshot struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}

type Observer func(Snapshot)

// Store keeps notifications newest first.
type Store struct {
	mu        sync.Mutex
	clock     clock.Clock
	items     []Notification
	observers map[int]Observer
	nextObs   int
}

func NewStore(c clock.Clock, initial []Notification) *Store {
	if c == nil {
		c = clock.Real{}
	}
	return &Store{
		clock:     c,
		items:     append([]Notification(nil), initial...),
		observers: make(map[int]Observer),
	}
}

// Add prepends a new unread notification and returns it.
func (s *Store) Add(title, message string, kind Kind) Notification {
	s.mu.Lock()
	n := Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Kind:      kind,
		Timestamp: s.clock.Now(),
	}
	s.items = append([]Notification{n}, s.items...)
	s.mu.Unlock()

	s.notify()
	return n
}

// MarkAsRead marks one notification. Unknown ids are a no-op.
func (s *Store) MarkAsRead(id string) bool {
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Read = true
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found {
		s.notify()
	}
	return found
}

func (s *Store) MarkAllAsRead() {
	s.mu.Lock()
	for i := range s.items {
		s.items[i].Read = true
	}
	s.mu.Unlock()

	s.notify()
}

func (s *Store) List() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.items...)
}

func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return unread(s.items)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Notifications: append([]Notification(nil), s.items...),
		UnreadCount:   unread(s.items),
	}
}

// Subscribe registers fn and returns a func that removes it.
func (s *Store) Subscribe(fn Observer) func() {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// notify runs observers synchronously, outside the lock.
func (s *Store) notify() {
	snap := s.Snapshot()

	s.mu.Lock()
	obs := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		obs = append(obs, fn)
	}
	s.mu.Unlock()

	for _, fn := range obs {
		fn(snap)
	}
}

func unread(items []Notification) int {
	n := 0
	for _, it := range items {
		if !it.Read {
			n++
		}
	}
	return n
}
