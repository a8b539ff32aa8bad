// Package sqlite implements the persistence collaborator on an embedded
// SQLite database, the page-context store for identity and options.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pushkit/internal/domain/repository"

	_ "modernc.org/sqlite" // pure-Go driver, no cgo
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
	store TEXT NOT NULL,
	key   TEXT NOT NULL,
	value BLOB NOT NULL,
	PRIMARY KEY (store, key)
);`

// Database stores values keyed by store+key in a single table.
type Database struct {
	db *sql.DB
}

// New opens (and if needed creates) the database at path. Use ":memory:" for
// an ephemeral store.
func New(path string) (*Database, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()

		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Database{db: db}, nil
}

var _ repository.Database = (*Database)(nil)

// Get returns the value under store/key, or repository.ErrNotFound.
func (d *Database) Get(ctx context.Context, store, key string) ([]byte, error) {
	var value []byte
	err := d.db.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE store = ? AND key = ?`,
		store, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}

		return nil, fmt.Errorf("failed to read %s/%s: %w", store, key, err)
	}

	return value, nil
}

// Put writes the value under store/key, overwriting any previous value.
func (d *Database) Put(ctx context.Context, store, key string, value []byte) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO kv_entries (store, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (store, key) DO UPDATE SET value = excluded.value`,
		store, key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", store, key, err)
	}

	return nil
}

// Close releases the underlying database handle.
func (d *Database) Close() error {
	return d.db.Close()
}
