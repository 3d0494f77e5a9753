package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(db DBTX) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountSelect = `
		SELECT account_id, club_id, bank_code, account_number, holder_name,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM club_accounts
		WHERE club_id = $1`

func (r *PgxAccountRepository) findAccount(ctx context.Context, query, clubID string) (*domain.ClubAccount, error) {
	var a domain.ClubAccount
	err := r.DB.QueryRow(ctx, query, clubID).Scan(
		&a.AccountID, &a.ClubID, &a.BankCode, &a.AccountNumber, &a.HolderName,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, queryFailed("find account of club "+clubID, err)
	}
	return &a, nil
}

func (r *PgxAccountRepository) FindAccountByClubID(ctx context.Context, clubID string) (*domain.ClubAccount, error) {
	return r.findAccount(ctx, accountSelect+";", clubID)
}

// LockAccountForClub only serializes when the repository is bound to a transaction;
// on the pool the lock is released as soon as the statement finishes.
func (r *PgxAccountRepository) LockAccountForClub(ctx context.Context, clubID string) (*domain.ClubAccount, error) {
	return r.findAccount(ctx, accountSelect+" FOR UPDATE;", clubID)
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, a domain.ClubAccount) error {
	query := `
		INSERT INTO club_accounts (
			account_id, club_id, bank_code, account_number, holder_name,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.DB.Exec(ctx, query,
		a.AccountID, a.ClubID, a.BankCode, a.AccountNumber, a.HolderName,
		a.CreatedAt, a.CreatedBy, a.LastUpdatedAt, a.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return queryFailed("insert account for club "+a.ClubID, err)
	}
	return nil
}
