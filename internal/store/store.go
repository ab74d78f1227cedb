// internal/store/store.go
//
// Persistence interface for in-flight rounds. Finished rounds are deleted,
// never archived.

package store

import (
	"context"
	"errors"

	"github.com/robalobadob/evilhangman/internal/game"
)

// ErrNotFound is returned by Get for unknown or expired round IDs.
var ErrNotFound = errors.New("round not found")

// Store defines the persistence interface for rounds.
// Implementations are backed by memory (NewMemoryStore) or Redis (NewRedisStore).
type Store interface {
	// Save persists or updates a round.
	Save(ctx context.Context, r *game.Round) error

	// Get retrieves a round by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Round, error)

	// Delete removes a round.
	Delete(ctx context.Context, id string) error
}
