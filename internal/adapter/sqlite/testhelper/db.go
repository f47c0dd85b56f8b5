// Package testhelper provides SQLite test databases for adapter tests.
package testhelper

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/heartmarshall/hindict/internal/adapter/sqlite"
)

// SetupTestDB creates a fresh migrated database file under t.TempDir()
// and returns a handle to it. The handle is closed via t.Cleanup.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _ := SetupTestDBPath(t)
	return db
}

// SetupTestDBPath is SetupTestDB that also returns the database file path.
func SetupTestDBPath(t *testing.T) (*sql.DB, string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	path := filepath.Join(t.TempDir(), "dictionary.db")
	db, err := sqlite.Open(ctx, path)
	if err != nil {
		t.Fatalf("testhelper: open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := sqlite.Migrate(ctx, db); err != nil {
		t.Fatalf("testhelper: migrate: %v", err)
	}

	return db, path
}

// Count returns SELECT COUNT(*) for table, failing the test on error.
func Count(t *testing.T, db *sql.DB, table string, where ...string) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if len(where) > 0 {
		query += " WHERE " + where[0]
	}

	var n int
	if err := db.QueryRow(query).Scan(&n); err != nil {
		t.Fatalf("testhelper: count %s: %v", table, err)
	}
	return n
}
