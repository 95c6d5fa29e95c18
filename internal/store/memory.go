// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used for the terminal client, tests, and deployments where durability
// is not required.
//
// Characteristics:
//   - Stores deep copies of *game.Match keyed by match ID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"

	"github.com/robalobadob/battleships/internal/game"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex           // guards matches
	matches map[string]*game.Match // keyed by Match.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{matches: make(map[string]*game.Match)}
}

// Load returns a copy so callers can mutate it freely until they Save.
func (m *memory) Load(ctx context.Context, id string) (*game.Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.matches[id]; ok {
		return g.Clone(), nil
	}
	return nil, ErrNotFound
}

func (m *memory) Save(ctx context.Context, g *game.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches[g.ID] = g.Clone()
	return nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.matches, id)
	return nil
}

func (m *memory) Exists(ctx context.Context, id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.matches[id]
	return ok, nil
}
