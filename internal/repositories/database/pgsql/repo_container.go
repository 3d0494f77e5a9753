package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider returns repositories that run each statement on the pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return newRepositoryProvider(dbPool)
}

func newRepositoryProvider(db DBTX) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ClubRepo:            newPgxClubRepository(db),
		MemberRepo:          newPgxMemberRepository(db),
		AccountRepo:         newPgxAccountRepository(db),
		EventRepo:           newPgxEventRepository(db),
		BankTransactionRepo: newPgxBankTransactionRepository(db),
		LedgerRepo:          newPgxLedgerRepository(db),
		PaymentRequestRepo:  newPgxPaymentRequestRepository(db),
	}
}
