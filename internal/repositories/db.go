package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the executor surface shared by the pool, a transaction and pgxmock
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Pool is a DBTX that can also open transactions
type Pool interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Gateway is the single entry point to the relational store
type Gateway struct {
	pool Pool
}

func NewGateway(pool Pool) *Gateway {
	return &Gateway{pool: pool}
}

// DB returns the non-transactional executor
func (g *Gateway) DB() DBTX {
	return g.pool
}

func (g *Gateway) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return g.pool.Query(ctx, sql, args...)
}

func (g *Gateway) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return g.pool.Exec(ctx, sql, args...)
}

// WithTransaction runs fn inside one transaction on one pooled connection.
// It commits when fn returns nil and rolls back on error or panic; a panic is re-raised after rollback.
func (g *Gateway) WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := g.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// marshalJSONB encodes a JSON column value, keeping nil maps as SQL NULL
func marshalJSONB[T ~map[string]V, V any](m T) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// errNoRowsAffected reports an update that matched nothing in the tenant scope.
// It wraps pgx.ErrNoRows so callers classify it as not found.
var errNoRowsAffected = fmt.Errorf("no rows affected: %w", pgx.ErrNoRows)

// prefixed qualifies a comma-separated column list with a table alias
func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
