package repositories

import (
	"context"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
)

// AccountReader defines read operations for club bank accounts
type AccountReader interface {
	// FindAccountByClubID retrieves the bank account of a club.
	FindAccountByClubID(ctx context.Context, clubID string) (*domain.ClubAccount, error)
}

// AccountWriter defines write operations for club bank accounts
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.ClubAccount) error
}

// AccountTransactionSupport defines operations that support serialized units of work
type AccountTransactionSupport interface {
	// LockAccountForClub selects the club's account row FOR UPDATE. Concurrent units of work
	// for the same club block here until the holder commits or rolls back.
	LockAccountForClub(ctx context.Context, clubID string) (*domain.ClubAccount, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
