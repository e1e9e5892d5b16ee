package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// QueryOne runs sql and scans the first row into a T.
func QueryOne[T any](c *Client, ctx context.Context, sql string, args ...any) (*T, error) {
	ctx, cancel := c.applyQueryTimeout(ctx)
	defer cancel()

	rows, err := c.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	return scanOne[T](rows)
}

// QueryAll runs sql and scans every row into a []*T.
func QueryAll[T any](c *Client, ctx context.Context, sql string, args ...any) ([]*T, error) {
	ctx, cancel := c.applyQueryTimeout(ctx)
	defer cancel()

	rows, err := c.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	return scanAll[T](rows)
}

// Exec runs a write statement and returns the affected row count.
func (c *Client) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	ctx, cancel := c.applyQueryTimeout(ctx)
	defer cancel()

	result, err := c.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("exec failed: %w", err)
	}
	return result.RowsAffected(), nil
}

// Exists runs a boolean query (SELECT EXISTS ...).
func (c *Client) Exists(ctx context.Context, sql string, args ...any) (bool, error) {
	ctx, cancel := c.applyQueryTimeout(ctx)
	defer cancel()

	var exists bool
	if err := c.pool.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists query failed: %w", err)
	}
	return exists, nil
}

// Count runs a counting query (SELECT COUNT(*) ...).
func (c *Client) Count(ctx context.Context, sql string, args ...any) (int64, error) {
	ctx, cancel := c.applyQueryTimeout(ctx)
	defer cancel()

	var n int64
	if err := c.pool.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return n, nil
}

// ExecBatch queues sql once per args entry and sends them as one pipeline.
func (c *Client) ExecBatch(ctx context.Context, sql string, argsList [][]any) (int64, error) {
	ctx, cancel := c.applyQueryTimeout(ctx)
	defer cancel()

	batch := &pgx.Batch{}
	for _, args := range argsList {
		batch.Queue(sql, args...)
	}

	results := c.pool.SendBatch(ctx, batch)
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
