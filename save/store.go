// Package save persists the meta-progression profile: coins, permanent
// upgrades, relics, unlocked stages and run history.
package save

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Store.Load when a key has never been saved.
var ErrNotFound = errors.New("save: not found")

// Store is a key-value blob store. Implementations must be safe for
// concurrent use.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// MemoryStore keeps blobs in memory. Useful for tests and for running
// without a save directory.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
	saves int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: map[string][]byte{}}
}

func (m *MemoryStore) Load(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryStore) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = append([]byte(nil), data...)
	m.saves++
	return nil
}

// Saves reports how many writes the store has accepted.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
