package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
)

// BankTransactionReader defines read operations for the transaction history store
type BankTransactionReader interface {
	// FindByUniqueKey looks up an ingested transaction by its dedup key within a club.
	FindByUniqueKey(ctx context.Context, clubID, uniqueKey string) (*domain.BankTransaction, error)

	FindTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error)

	// ListTransactionsByRange retrieves a page of transactions that occurred in [from, to), newest first.
	ListTransactionsByRange(ctx context.Context, clubID string, from, to time.Time, limit int, nextToken *string) ([]domain.BankTransaction, *string, error)

	// ListUnmatchedTransactions returns every transaction of the club not yet bound to a request.
	ListUnmatchedTransactions(ctx context.Context, clubID string) ([]domain.BankTransaction, error)
}

// BankTransactionWriter defines write operations for the transaction history store
type BankTransactionWriter interface {
	// SaveTransaction inserts a new record; a duplicate (club, unique key) yields apperrors.ErrDuplicate.
	SaveTransaction(ctx context.Context, tx domain.BankTransaction) error

	// MarkMatched sets the matched flag, the only mutable column of a history record.
	MarkMatched(ctx context.Context, transactionID string) error
}

// BankTransactionRepositoryFacade combines all history-store repository interfaces
type BankTransactionRepositoryFacade interface {
	BankTransactionReader
	BankTransactionWriter
}
