package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
)

// PgxLedgerRepository stores journal lines. Creation order is the BIGSERIAL seq column,
// since every entry of one sync shares its created_at.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(db DBTX) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerColumns = `entry_id, club_id, account_id, event_id, transaction_id, entry_type,
		amount, balance_after, memo, editor_id, created_at`

func scanLedgerEntry(row pgx.Row) (domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	err := row.Scan(
		&e.EntryID, &e.ClubID, &e.AccountID, &e.EventID, &e.TransactionID, &e.EntryType,
		&e.Amount, &e.BalanceAfter, &e.Memo, &e.EditorID, &e.CreatedAt,
	)
	return e, err
}

func (r *PgxLedgerRepository) findOne(ctx context.Context, query string, args ...any) (*domain.LedgerEntry, error) {
	e, err := scanLedgerEntry(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, queryFailed("find ledger entry", err)
	}
	return &e, nil
}

func (r *PgxLedgerRepository) list(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, queryFailed("list ledger entries", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, queryFailed("scan ledger entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed("iterate ledger entries", err)
	}
	return entries, nil
}

func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, e domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	_, err := r.DB.Exec(ctx, query,
		e.EntryID, e.ClubID, e.AccountID, e.EventID, e.TransactionID, e.EntryType,
		e.Amount, e.BalanceAfter, e.Memo, e.EditorID, e.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return queryFailed("insert ledger entry "+e.EntryID, err)
	}
	return nil
}

func (r *PgxLedgerRepository) FindLatestEntry(ctx context.Context, clubID string) (*domain.LedgerEntry, error) {
	return r.findOne(ctx, `SELECT `+ledgerColumns+` FROM ledger_entries WHERE club_id = $1 ORDER BY seq DESC LIMIT 1;`, clubID)
}

func (r *PgxLedgerRepository) FindEntryByTransactionID(ctx context.Context, transactionID string) (*domain.LedgerEntry, error) {
	return r.findOne(ctx, `SELECT `+ledgerColumns+` FROM ledger_entries WHERE transaction_id = $1;`, transactionID)
}

func (r *PgxLedgerRepository) ListEntriesByRange(ctx context.Context, clubID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	return r.list(ctx, `SELECT `+ledgerColumns+`
		FROM ledger_entries
		WHERE club_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY seq;`, clubID, from, to)
}

func (r *PgxLedgerRepository) ListEntriesByEvent(ctx context.Context, clubID, eventID string) ([]domain.LedgerEntry, error) {
	return r.list(ctx, `SELECT `+ledgerColumns+`
		FROM ledger_entries
		WHERE club_id = $1 AND event_id = $2
		ORDER BY seq;`, clubID, eventID)
}

// AttachEvent is the only update the ledger allows: tagging an untagged entry with its event.
func (r *PgxLedgerRepository) AttachEvent(ctx context.Context, entryID, eventID string) error {
	tag, err := r.DB.Exec(ctx, `UPDATE ledger_entries SET event_id = $2 WHERE entry_id = $1 AND event_id IS NULL;`, entryID, eventID)
	if err != nil {
		return queryFailed("attach event to ledger entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}
