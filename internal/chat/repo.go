package chat

import (
	"sync"

	"github.com/sahuAhmadzafar/PMT/internal/clock"
)

// MemoryRepo hands each session its own room built from the seed.
type MemoryRepo struct {
	mu    sync.RWMutex
	clock clock.Clock
	seed  Seed
	rooms map[string]*Room
}

func NewMemoryRepo(c clock.Clock, seed Seed) *MemoryRepo {
	return &MemoryRepo{clock: c, seed: seed, rooms: make(map[string]*Room)}
}

func (r *MemoryRepo) Load(sessionID string) *Room {
	r.mu.RLock()
	room, ok := r.rooms[sessionID]
	r.mu.RUnlock()
	if ok {
		return room
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if room, ok := r.rooms[sessionID]; ok {
		return room
	}
	room = r.seed.NewRoom(r.clock)
	r.rooms[sessionID] = room
	return room
}

func (r *MemoryRepo) Clock() clock.Clock { return r.clock }

func (r *MemoryRepo) Discard(sessionID string) {
	r.mu.Lock()
	delete(r.rooms, sessionID)
	r.mu.Unlock()
}
