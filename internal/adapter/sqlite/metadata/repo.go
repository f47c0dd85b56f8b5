// Package metadata implements the key/value build metadata table.
package metadata

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/heartmarshall/hindict/internal/adapter/sqlite"
)

// Repo provides metadata persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new metadata repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Upsert writes every entry of values, overwriting existing keys.
func (r *Repo) Upsert(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b := sqlite.Builder().Insert("metadata").Columns("key", "value")
	for _, k := range keys {
		b = b.Values(k, values[k])
	}

	query, args, err := b.Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value").ToSql()
	if err != nil {
		return fmt.Errorf("build upsert metadata: %w", err)
	}

	if _, err := sqlite.QuerierFromCtx(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert metadata: %w", err)
	}
	return nil
}

// All returns every metadata entry. NULL values read as "".
func (r *Repo) All(ctx context.Context) (map[string]string, error) {
	query, args, err := sqlite.Builder().
		Select("key", "COALESCE(value, '')").
		From("metadata").
		OrderBy("key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select metadata: %w", err)
	}

	rows, err := sqlite.QuerierFromCtx(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select metadata: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan metadata: %w", err)
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select metadata: %w", err)
	}
	return out, nil
}
