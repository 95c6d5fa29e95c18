// Package store persists matches.
//
// A match is saved and loaded as one unit: both players, both boards with
// their grids, and both fleets with per-ship damage. Implementations are
// backed by memory, SQLite, or Redis.
package store

import (
	"context"
	"errors"

	"github.com/robalobadob/battleships/internal/game"
)

var ErrNotFound = errors.New("match not found")

// Store defines the persistence interface for matches.
type Store interface {
	// Load returns the match stored under id, or ErrNotFound.
	Load(ctx context.Context, id string) (*game.Match, error)

	// Save creates or replaces the whole match atomically.
	Save(ctx context.Context, m *game.Match) error

	// Delete removes the match and everything it owns. Deleting a missing
	// match is not an error.
	Delete(ctx context.Context, id string) error

	// Exists reports whether a match is stored under id.
	Exists(ctx context.Context, id string) (bool, error)
}
