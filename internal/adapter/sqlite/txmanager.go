package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
)

var savepointNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// TxManager manages database transactions using the context pattern.
// Nested RunInTx calls are NOT supported; use RunInSavepoint for a unit of
// work inside a running transaction.
type TxManager struct {
	db *sql.DB
}

// NewTxManager creates a new TxManager.
func NewTxManager(db *sql.DB) *TxManager {
	return &TxManager{db: db}
}

// RunInTx executes fn within a database transaction.
// On success: commits.
// On error from fn: rolls back and returns the error.
// On panic from fn: rolls back and re-panics.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// RunInSavepoint executes fn inside a named savepoint of the transaction
// carried by ctx. If fn fails, only the work done since the savepoint is
// undone and the transaction stays usable. Without a transaction in ctx it
// behaves like RunInTx.
func (m *TxManager) RunInSavepoint(ctx context.Context, name string, fn func(ctx context.Context) error) (err error) {
	tx, ok := txFromCtx(ctx)
	if !ok {
		return m.RunInTx(ctx, fn)
	}
	if !savepointNameRe.MatchString(name) {
		return fmt.Errorf("invalid savepoint name %q", name)
	}

	if _, err := tx.ExecContext(ctx, "SAVEPOINT "+name); err != nil {
		return fmt.Errorf("savepoint %s: %w", name, err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = rollbackTo(ctx, tx, name)
			panic(r)
		}
	}()

	if err := fn(ctx); err != nil {
		if rbErr := rollbackTo(ctx, tx, name); rbErr != nil {
			return fmt.Errorf("rollback to savepoint failed: %w (original error: %v)", rbErr, err)
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, "RELEASE "+name); err != nil {
		return fmt.Errorf("release savepoint %s: %w", name, err)
	}

	return nil
}

// rollbackTo undoes the work since the savepoint and removes it.
func rollbackTo(ctx context.Context, tx *sql.Tx, name string) error {
	if _, err := tx.ExecContext(ctx, "ROLLBACK TO "+name); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, "RELEASE "+name)
	return err
}
