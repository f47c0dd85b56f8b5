// Package store assembles the SQLite dictionary store from the adapter
// repositories.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/heartmarshall/hindict/internal/adapter/sqlite"
	"github.com/heartmarshall/hindict/internal/adapter/sqlite/metadata"
	"github.com/heartmarshall/hindict/internal/adapter/sqlite/word"
)

// Store is an open dictionary database.
type Store struct {
	*sqlite.TxManager
	*word.Repo

	db   *sql.DB
	meta *metadata.Repo
	path string
}

// Create opens (creating if needed) the database at path and applies the
// schema migrations.
func Create(ctx context.Context, path string) (*Store, error) {
	db, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := sqlite.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}

	return newStore(db, path), nil
}

// Open opens an existing store read-only.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sqlite.OpenReadOnly(ctx, path)
	if err != nil {
		return nil, err
	}
	return newStore(db, path), nil
}

func newStore(db *sql.DB, path string) *Store {
	return &Store{
		TxManager: sqlite.NewTxManager(db),
		Repo:      word.New(db),
		db:        db,
		meta:      metadata.New(db),
		path:      path,
	}
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// DB returns the underlying handle.
func (s *Store) DB() *sql.DB { return s.db }

// UpsertMetadata writes build metadata, overwriting existing keys.
func (s *Store) UpsertMetadata(ctx context.Context, values map[string]string) error {
	return s.meta.Upsert(ctx, values)
}

// Metadata returns all build metadata.
func (s *Store) Metadata(ctx context.Context) (map[string]string, error) {
	return s.meta.All(ctx)
}

// Optimize compacts the file and refreshes planner statistics.
func (s *Store) Optimize(ctx context.Context) error {
	return sqlite.Optimize(ctx, s.db)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
