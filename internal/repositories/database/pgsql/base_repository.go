package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
)

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx, so one repository
// implementation serves both pooled reads and transaction-bound units of work.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB DBTX
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// queryFailed wraps an infrastructure error the way every repository reports it.
func queryFailed(what string, err error) error {
	return apperrors.NewAppError(500, "failed to "+what, err)
}

// PgxTxManager runs units of work inside pgx transactions.
type PgxTxManager struct {
	Pool *pgxpool.Pool
}

// NewTxManager creates a TransactionManager backed by pool.
func NewTxManager(pool *pgxpool.Pool) *PgxTxManager {
	return &PgxTxManager{Pool: pool}
}

var _ portsrepo.TransactionManager = (*PgxTxManager)(nil)

// Begin starts a new database transaction
func (m *PgxTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := m.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (m *PgxTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (m *PgxTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// WithinTx hands fn repositories bound to a fresh transaction. The transaction commits
// when fn returns nil and rolls back otherwise, including on context cancellation.
func (m *PgxTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.RepositoryProvider) error) error {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer m.Rollback(ctx, tx) // no-op after a successful commit

	if err := fn(ctx, newRepositoryProvider(tx)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("unit of work aborted: %w", err)
	}
	return m.Commit(ctx, tx)
}
