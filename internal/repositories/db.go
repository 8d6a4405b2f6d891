package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database is the subset of *pgxpool.Pool used by repositories. Each call
// borrows a pooled connection and returns it when the call (or the returned
// rows) completes.
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// available reports whether db can hand out connections at all.
func available(db Database) bool {
	if db == nil {
		return false
	}
	if pool, ok := db.(*pgxpool.Pool); ok && pool == nil {
		return false
	}
	return true
}
