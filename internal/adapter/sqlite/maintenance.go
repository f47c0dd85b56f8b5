package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Optimize compacts the database file and refreshes planner statistics.
// It must run outside any transaction.
func Optimize(ctx context.Context, db *sql.DB) error {
	steps := []struct {
		name string
		sql  string
	}{
		{"merge search index", `INSERT INTO words_fts (words_fts) VALUES ('optimize')`},
		{"vacuum", `VACUUM`},
		{"analyze", `ANALYZE`},
	}

	for _, s := range steps {
		if _, err := db.ExecContext(ctx, s.sql); err != nil {
			return fmt.Errorf("optimize: %s: %w", s.name, err)
		}
	}
	return nil
}
