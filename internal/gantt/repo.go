package gantt

import "sync"

// MemoryRepo keeps one forest per session, cloned from the seed on first use.
type MemoryRepo struct {
	mu       sync.RWMutex
	seed     *Forest
	sessions map[string]*Forest
}

func NewMemoryRepo(seed *Forest) *MemoryRepo {
	return &MemoryRepo{
		seed:     seed.Clone(),
		sessions: make(map[string]*Forest),
	}
}

func (r *MemoryRepo) Load(sessionID string) *Forest {
	r.mu.RLock()
	f, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	if ok {
		return f
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok = r.sessions[sessionID]; ok {
		return f
	}
	f = r.seed.Clone()
	r.sessions[sessionID] = f
	return f
}

// Discard drops the session's forest. No-op if unknown.
func (r *MemoryRepo) Discard(sessionID string) {
	r.mu.Lock()
	delete(r.sessions, sessionID)
	r.mu.Unlock()
}
