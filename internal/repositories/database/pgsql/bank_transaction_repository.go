package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/club_ledger_app/internal/utils/pagination"
)

type PgxBankTransactionRepository struct {
	BaseRepository
}

func newPgxBankTransactionRepository(db DBTX) *PgxBankTransactionRepository {
	return &PgxBankTransactionRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.BankTransactionRepositoryFacade = (*PgxBankTransactionRepository)(nil)

const bankTransactionColumns = `transaction_id, club_id, account_id, occurred_at, amount, inout_type,
		print_content, balance_after, unique_key, matched, created_at`

func scanBankTransaction(row pgx.Row) (domain.BankTransaction, error) {
	var t domain.BankTransaction
	err := row.Scan(
		&t.TransactionID, &t.ClubID, &t.AccountID, &t.OccurredAt, &t.Amount, &t.InoutType,
		&t.PrintContent, &t.BalanceAfter, &t.UniqueKey, &t.Matched, &t.CreatedAt,
	)
	return t, err
}

func collectBankTransactions(rows pgx.Rows) ([]domain.BankTransaction, error) {
	defer rows.Close()
	txs := []domain.BankTransaction{}
	for rows.Next() {
		t, err := scanBankTransaction(rows)
		if err != nil {
			return nil, queryFailed("scan bank transaction", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, queryFailed("iterate bank transactions", err)
	}
	return txs, nil
}

// SaveTransaction inserts a history record. A conflicting (club_id, unique_key) is reported as
// apperrors.ErrDuplicate without aborting the surrounding transaction.
func (r *PgxBankTransactionRepository) SaveTransaction(ctx context.Context, t domain.BankTransaction) error {
	query := `
		INSERT INTO bank_transactions (` + bankTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (club_id, unique_key) DO NOTHING;
	`
	tag, err := r.DB.Exec(ctx, query,
		t.TransactionID, t.ClubID, t.AccountID, t.OccurredAt, t.Amount, t.InoutType,
		t.PrintContent, t.BalanceAfter, t.UniqueKey, t.Matched, t.CreatedAt,
	)
	if err != nil {
		return queryFailed("insert bank transaction "+t.UniqueKey, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDuplicate
	}
	return nil
}

func (r *PgxBankTransactionRepository) FindByUniqueKey(ctx context.Context, clubID, uniqueKey string) (*domain.BankTransaction, error) {
	query := `SELECT ` + bankTransactionColumns + ` FROM bank_transactions WHERE club_id = $1 AND unique_key = $2;`
	t, err := scanBankTransaction(r.DB.QueryRow(ctx, query, clubID, uniqueKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, queryFailed("find bank transaction by key", err)
	}
	return &t, nil
}

func (r *PgxBankTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error) {
	query := `SELECT ` + bankTransactionColumns + ` FROM bank_transactions WHERE transaction_id = $1;`
	t, err := scanBankTransaction(r.DB.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, queryFailed("find bank transaction "+transactionID, err)
	}
	return &t, nil
}

// ListTransactionsByRange pages through [from, to) ordered by occurred_at DESC, transaction_id DESC.
func (r *PgxBankTransactionRepository) ListTransactionsByRange(ctx context.Context, clubID string, from, to time.Time, limit int, nextToken *string) ([]domain.BankTransaction, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	// One extra row tells whether a next page exists.
	fetchLimit := limit + 1

	query := `SELECT ` + bankTransactionColumns + `
		FROM bank_transactions
		WHERE club_id = $1 AND occurred_at >= $2 AND occurred_at < $3`
	args := []any{clubID, from, to}

	if nextToken != nil && *nextToken != "" {
		lastAt, lastID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", errors.Join(apperrors.ErrValidation, err))
		}
		query += ` AND (occurred_at, transaction_id) < ($4, $5)`
		args = append(args, lastAt, lastID)
	}
	query += ` ORDER BY occurred_at DESC, transaction_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, queryFailed("list bank transactions of club "+clubID, err)
	}
	txs, err := collectBankTransactions(rows)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(txs) > limit {
		txs = txs[:limit]
		last := txs[len(txs)-1]
		token := pagination.EncodeCursor(last.OccurredAt, last.TransactionID)
		next = &token
	}
	return txs, next, nil
}

func (r *PgxBankTransactionRepository) ListUnmatchedTransactions(ctx context.Context, clubID string) ([]domain.BankTransaction, error) {
	query := `SELECT ` + bankTransactionColumns + `
		FROM bank_transactions
		WHERE club_id = $1 AND NOT matched
		ORDER BY occurred_at, transaction_id;`
	rows, err := r.DB.Query(ctx, query, clubID)
	if err != nil {
		return nil, queryFailed("list unmatched transactions of club "+clubID, err)
	}
	return collectBankTransactions(rows)
}

func (r *PgxBankTransactionRepository) MarkMatched(ctx context.Context, transactionID string) error {
	tag, err := r.DB.Exec(ctx, `UPDATE bank_transactions SET matched = TRUE WHERE transaction_id = $1 AND NOT matched;`, transactionID)
	if err != nil {
		return queryFailed("mark transaction "+transactionID+" matched", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}
