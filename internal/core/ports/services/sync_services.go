package services

import (
	"context"
	"time"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
)

// SyncSvc pulls bank transactions and runs one reconciliation cycle.
type SyncSvc interface {
	// Sync fetches the club account's transactions for [from, to] and ingests, records and matches
	// the new ones in a single unit of work. Unless both bounds are given, the range runs from the day
	// after the latest ledger entry (or the bootstrap window) to today.
	Sync(ctx context.Context, clubID string, from, to *time.Time) (*SyncResult, error)

	// SyncAll runs Sync for every club with a registered account. Per-club failures are logged
	// and counted; they do not stop the remaining clubs.
	SyncAll(ctx context.Context) (synced int, failed int)
}

// SyncResult is the outcome of one sync cycle.
type SyncResult struct {
	Ingested int
	Entries  []domain.LedgerEntry
	Matched  []domain.PaymentRequest
}
