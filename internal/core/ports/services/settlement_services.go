package services

import (
	"context"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/SscSPs/club_ledger_app/internal/dto"
)

// SettlementSvc drives the per-event fee collection and leftover refund of fair-settlement clubs.
type SettlementSvc interface {
	// CollectEntryFees raises one deposit request per participant of an open event.
	// Participants that already have one are skipped.
	CollectEntryFees(ctx context.Context, clubID, eventID, actorID string) ([]domain.PaymentRequest, error)

	// SettleAndRefund closes the event and raises equal settlement requests for its payers.
	SettleAndRefund(ctx context.Context, clubID, eventID, actorID string) (*domain.Settlement, error)

	// DisburseRefund pays a settlement request out through the bank and records the transfer.
	DisburseRefund(ctx context.Context, requestID string, req dto.DisburseRefundRequest, actorID string) (*domain.LedgerEntry, error)
}
