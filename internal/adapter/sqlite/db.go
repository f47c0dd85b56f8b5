// Package sqlite holds the SQLite plumbing shared by the dictionary store
// repositories: connection setup, embedded migrations, transactions and
// driver error classification.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

const driverName = "sqlite"

// connection pragmas applied to every connection via the DSN.
var pragmas = []string{"foreign_keys(1)", "busy_timeout(5000)"}

var pathEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

// dsn builds a file: URI for path with the connection pragmas.
func dsn(path string, readOnly bool) string {
	params := make([]string, 0, len(pragmas)+1)
	for _, p := range pragmas {
		params = append(params, "_pragma="+p)
	}
	if readOnly {
		params = append(params, "mode=ro")
	}
	return "file:" + pathEscaper.Replace(filepath.ToSlash(path)) + "?" + strings.Join(params, "&")
}

// Open opens (creating if needed) the SQLite database at path.
// The pool is limited to one connection: the store is built by a single
// writer and per-connection pragmas must hold for every statement.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	return open(ctx, path, false)
}

// OpenReadOnly opens an existing SQLite database at path for reading.
func OpenReadOnly(ctx context.Context, path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open store %s: %w", path, err)
		}
		return nil, fmt.Errorf("stat store %s: %w", path, err)
	}
	return open(ctx, path, true)
}

func open(ctx context.Context, path string, readOnly bool) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn(path, readOnly))
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}

	return db, nil
}
