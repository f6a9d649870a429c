// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used for ephemeral play (DB_PATH=memory or --db memory) and in tests.
//
// Characteristics:
//   - Values keyed by player ID, then key.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
)

// Store defines per-player key/value persistence for round progress.
// Values are kept as text; parsing is the caller's concern.
type Store interface {
	// Get returns the value for key, or ok=false when missing.
	Get(ctx context.Context, player, key string) (value string, ok bool, err error)

	// Put writes or replaces a value.
	Put(ctx context.Context, player, key, value string) error

	// Claim moves every value of player from to player to, unless to
	// already has progress of its own. It reports whether anything moved.
	Claim(ctx context.Context, from, to string) (bool, error)
}

// ErrNoPlayer is returned for an empty player ID.
var ErrNoPlayer = errors.New("store: empty player id")

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu   sync.RWMutex                 // guards data
	data map[string]map[string]string // player -> key -> value
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{data: make(map[string]map[string]string)}
}

func (m *memory) Get(ctx context.Context, player, key string) (string, bool, error) {
	if player == "" {
		return "", false, ErrNoPlayer
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[player][key]
	return v, ok, nil
}

func (m *memory) Put(ctx context.Context, player, key, value string) error {
	if player == "" {
		return ErrNoPlayer
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kv := m.data[player]
	if kv == nil {
		kv = make(map[string]string)
		m.data[player] = kv
	}
	kv[key] = value
	return nil
}

func (m *memory) Claim(ctx context.Context, from, to string) (bool, error) {
	if from == "" || to == "" {
		return false, ErrNoPlayer
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.data[to]) > 0 || len(m.data[from]) == 0 || from == to {
		return false, nil
	}
	m.data[to] = m.data[from]
	delete(m.data, from)
	return true, nil
}
