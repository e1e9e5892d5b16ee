package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Tx is a database transaction. Every operation runs on the same
// connection and commits or rolls back atomically.
type Tx interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	ExecBatch(ctx context.Context, sql string, argsList [][]any) (int64, error)
	Exists(ctx context.Context, sql string, args ...any) (bool, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type txWrapper struct {
	tx pgx.Tx
}

// BeginTx opens a transaction.
func (c *Client) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &txWrapper{tx: tx}, nil
}

// WithTx runs fn inside a transaction, committing on nil error and
// rolling back otherwise.
func (c *Client) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := c.BeginTx(ctx)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("rollback failed: %v (original: %w)", rbErr, err)
		}
		return err
	}

	return tx.Commit(ctx)
}

func (t *txWrapper) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	result, err := t.tx.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("exec failed: %w", err)
	}
	return result.RowsAffected(), nil
}

func (t *txWrapper) ExecBatch(ctx context.Context, sql string, argsList [][]any) (int64, error) {
	batch := &pgx.Batch{}
	for _, args := range argsList {
		batch.Queue(sql, args...)
	}

	results := t.tx.SendBatch(ctx, batch)
	defer results.Close()

	var totalAffected int64
	for i := 0; i < len(argsList); i++ {
		ct, err := results.Exec()
		if err != nil {
			return totalAffected, fmt.Errorf("batch exec failed at index %d: %w", i, err)
		}
		totalAffected += ct.RowsAffected()
	}
	return totalAffected, nil
}

func (t *txWrapper) Exists(ctx context.Context, sql string, args ...any) (bool, error) {
	var exists bool
	if err := t.tx.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists query failed: %w", err)
	}
	return exists, nil
}

func (t *txWrapper) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.tx.QueryRow(ctx, sql, args...)
}

func (t *txWrapper) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (t *txWrapper) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}
