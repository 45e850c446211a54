package store

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql methods the item store needs.
// Both *sql.DB and *sql.Tx satisfy it, so a store can run against the
// shared connection pool or be rebound to a single transaction through
// WithTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
