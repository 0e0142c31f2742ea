// internal/store/memory.go
//
// In-memory holder for the one live bridge session served over HTTP.
//
// Characteristics:
//   - Holds at most one *bridge.Game; Save replaces whatever was there.
//   - Concurrency-safe: every access to the game runs under one mutex, so
//     handlers never interleave moves on the same session.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/bridge/internal/bridge"
)

// ErrNotFound is returned when no session matches the requested ID.
var ErrNotFound = errors.New("not found")

// Store defines access to the current game session.
type Store interface {
	// Save installs g as the current session.
	Save(ctx context.Context, g *bridge.Game) error

	// Do runs fn on the session with the given ID while holding the lock.
	// Returns ErrNotFound if id is not the current session.
	Do(ctx context.Context, id string, fn func(g *bridge.Game) error) error
}

// memory is a single-slot Store.
type memory struct {
	mu   sync.Mutex
	game *bridge.Game
}

// NewMemoryStore constructs an empty Store.
func NewMemoryStore() Store {
	return &memory{}
}

func (m *memory) Save(ctx context.Context, g *bridge.Game) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.game = g
	return nil
}

func (m *memory) Do(ctx context.Context, id string, fn func(g *bridge.Game) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.game == nil || m.game.ID != id {
		return ErrNotFound
	}
	return fn(m.game)
}
