package kanban

import "sync"

// Repo hands out the board machine for a session.
type Repo interface {
	Load(sessionID string) (*Machine, error)
	Discard(sessionID string)
	// Seed is the board a reset returns to.
	Seed() Board
}

// MemoryRepo keeps one machine per session, built from the seed on first use.
type MemoryRepo struct {
	mu       sync.RWMutex
	seed     Board
	sessions map[string]*Machine
}

func NewMemoryRepo(seed Board) *MemoryRepo {
	return &MemoryRepo{
		seed:     seed.Clone(),
		sessions: make(map[string]*Machine),
	}
}

// Seed returns a copy of the board every new session starts from.
func (r *MemoryRepo) Seed() Board {
	return r.seed.Clone()
}

// Load returns the session's machine, creating it from the seed if it doesn't exist.
func (r *MemoryRepo) Load(sessionID string) (*Machine, error) {
	r.mu.RLock()
	m, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if ok {
		return m, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if m, ok = r.sessions[sessionID]; ok {
		return m, nil
	}
	m = NewMachine(r.seed)
	r.sessions[sessionID] = m
	return m, nil
}

// Discard drops the session's board. Soft failure: no-op if unknown.
func (r *MemoryRepo) Discard(sessionID string) {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
}
