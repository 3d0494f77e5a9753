package services

import (
	"context"
	"time"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/SscSPs/club_ledger_app/internal/dto"
)

// LedgerReaderSvc defines read operations on a club's journal
type LedgerReaderSvc interface {
	// ListEntries returns entries created in the inclusive day range [from, to].
	ListEntries(ctx context.Context, clubID string, from, to time.Time) ([]domain.LedgerEntry, error)

	// ListEventEntries returns entries attributed to an event.
	ListEventEntries(ctx context.Context, clubID, eventID string) ([]domain.LedgerEntry, error)

	// Statement summarises a range and checks the running-balance chain.
	Statement(ctx context.Context, clubID string, from, to time.Time) (*domain.LedgerStatement, error)
}

// LedgerWriterSvc defines officer-driven writes to the journal
type LedgerWriterSvc interface {
	// RecordManualEntry appends an entry that has no bank transaction behind it (cash spending, corrections).
	RecordManualEntry(ctx context.Context, clubID string, req dto.CreateLedgerEntryRequest, actorID string) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
