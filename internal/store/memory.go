// internal/store/memory.go
//
// In-memory Store used by the terminal client, tests, and servers started
// without Redis.
//
// Characteristics:
//   - Sessions are keyed by ID in a map guarded by an RWMutex.
//   - Values are copied in and out, so callers never share a History slice
//     with the store.
//   - State is lost when the process restarts.
package store

import (
	"context"
	"slices"
	"sync"
)

type memory struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]Session)}
}

func (m *memory) Save(_ context.Context, s Session) error {
	s.Round.History = slices.Clone(s.Round.History)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(_ context.Context, id string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	s.Round.History = slices.Clone(s.Round.History)
	return s, nil
}

func (m *memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
