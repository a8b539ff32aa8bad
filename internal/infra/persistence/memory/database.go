// Package memory implements the persistence collaborator in process memory,
// used by the worker context and by tests.
package memory

import (
	"context"
	"sync"

	"pushkit/internal/domain/repository"
)

type entryKey struct {
	store string
	key   string
}

// Database is an in-memory store keyed by store+key.
type Database struct {
	mu      sync.RWMutex
	entries map[entryKey][]byte
}

// New creates an empty in-memory database.
func New() *Database {
	return &Database{entries: make(map[entryKey][]byte)}
}

var _ repository.Database = (*Database)(nil)

// Get returns the value under store/key, or repository.ErrNotFound.
func (d *Database) Get(_ context.Context, store, key string) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	value, ok := d.entries[entryKey{store: store, key: key}]
	if !ok {
		return nil, repository.ErrNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)

	return out, nil
}

// Put writes the value under store/key, overwriting any previous value.
func (d *Database) Put(_ context.Context, store, key string, value []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	d.entries[entryKey{store: store, key: key}] = stored

	return nil
}
