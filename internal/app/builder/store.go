// Package builder loads processed words into a fresh SQLite dictionary store.
package builder

import (
	"context"

	"github.com/heartmarshall/hindict/internal/domain"
)

// Store defines the persistence contract consumed by the builder.
// All methods use only domain types; no adapter imports.
// Implemented by store.Store.
type Store interface {
	// Transactions. Writes join the transaction carried by ctx.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	RunInSavepoint(ctx context.Context, name string, fn func(ctx context.Context) error) error

	// Words and their children.
	CreateOrGetWord(ctx context.Context, w domain.ProcessedWord) (id int64, created bool, err error)
	InsertDefinitions(ctx context.Context, wordID int64, defs []string) error
	InsertTranslations(ctx context.Context, wordID int64, translations map[string][]string) error
	InsertExamples(ctx context.Context, wordID int64, examples []string) error

	Counts(ctx context.Context) (domain.StoreCounts, error)
	UpsertMetadata(ctx context.Context, values map[string]string) error

	// Optimize runs outside any transaction.
	Optimize(ctx context.Context) error
	Close() error
}

// Opener creates a migrated, empty store at path.
type Opener func(ctx context.Context, path string) (Store, error)
