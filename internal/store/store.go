// internal/store/store.go
//
// Persistence for in-flight rounds.
// Defines:
//   - Session: one round plus the bookkeeping the session layer needs.
//   - Store: Save/Get/Delete, implemented in memory (memory.go) and in Redis (redis.go).
//   - Locker: per-round mutual exclusion for guess submissions (lock.go).
package store

import (
	"context"
	"errors"
	"time"

	"github.com/robalobadob/wordle/internal/game"
)

var ErrNotFound = errors.New("store: not found")

// Session is a round owned by one player. Daily is the UTC date key for
// daily-challenge rounds and empty otherwise.
type Session struct {
	ID         string          `json:"id"`
	Owner      string          `json:"owner"`
	Difficulty string          `json:"difficulty"`
	Daily      string          `json:"daily,omitempty"`
	Round      game.RoundState `json:"round"`
	StartedAt  time.Time       `json:"startedAt"`
}

// Store defines the persistence interface for sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s Session) error

	// Get returns ErrNotFound for unknown (or expired) IDs.
	Get(ctx context.Context, id string) (Session, error)

	// Delete is a no-op for unknown IDs.
	Delete(ctx context.Context, id string) error
}
