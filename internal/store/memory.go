// internal/store/memory.go
//
// In-memory implementation of Store.
// Used for single-process servers and tests, where in-flight rounds may be lost on restart.
//
// Characteristics:
//   - Stores deep copies of *game.Round keyed by ID, so callers never share state.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).

package store

import (
	"context"
	"sync"

	"github.com/robalobadob/evilhangman/internal/game"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex           // guards rounds map
	rounds map[string]*game.Round // keyed by Round.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{rounds: make(map[string]*game.Round)}
}

// Save adds or updates the round in the map.
func (m *memory) Save(ctx context.Context, r *game.Round) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds[r.ID] = r.Clone()
	return nil
}

// Get looks up a round by ID.
func (m *memory) Get(ctx context.Context, id string) (*game.Round, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rounds[id]; ok {
		return r.Clone(), nil
	}
	return nil, ErrNotFound
}

// Delete drops a round; missing IDs are not an error.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rounds, id)
	return nil
}
