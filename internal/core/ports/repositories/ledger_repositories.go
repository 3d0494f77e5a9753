package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
)

// LedgerReader defines read operations for ledger entries
type LedgerReader interface {
	// FindLatestEntry returns the most recent entry of the club, or nil when the ledger is empty.
	FindLatestEntry(ctx context.Context, clubID string) (*domain.LedgerEntry, error)

	// FindEntryByTransactionID returns the entry produced from a bank transaction.
	FindEntryByTransactionID(ctx context.Context, transactionID string) (*domain.LedgerEntry, error)

	// ListEntriesByRange returns entries created in [from, to) in creation order.
	ListEntriesByRange(ctx context.Context, clubID string, from, to time.Time) ([]domain.LedgerEntry, error)

	// ListEntriesByEvent returns entries attributed to an event in creation order.
	ListEntriesByEvent(ctx context.Context, clubID, eventID string) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines write operations for ledger entries. There is no update or delete.
type LedgerWriter interface {
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// AttachEvent sets the event of an entry that has none yet.
	AttachEvent(ctx context.Context, entryID, eventID string) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
