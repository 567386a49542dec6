package project

import (
	"context"
	"sync"
)

// MemoryRepo serves the seeded project list in seed order.
type MemoryRepo struct {
	mu    sync.RWMutex
	order []string
	m     map[string]Project
}

func NewMemoryRepo(seed []Project) *MemoryRepo {
	r := &MemoryRepo{m: make(map[string]Project, len(seed))}
	for _, p := range seed {
		if _, dup := r.m[p.ID]; !dup {
			r.order = append(r.order, p.ID)
		}
		p.Team = append([]string(nil), p.Team...)
		r.m[p.ID] = p
	}
	return r
}

func (r *MemoryRepo) List(ctx context.Context) ([]Project, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := make([]Project, 0, len(r.order))
	for _, id := range r.order {
		projects = append(projects, r.m[id])
	}
	return projects, nil
}
