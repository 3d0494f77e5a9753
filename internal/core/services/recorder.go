package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
)

// AppendParams describes one ledger line to append.
type AppendParams struct {
	ClubID        string
	AccountID     string
	Type          domain.EntryType
	Amount        decimal.Decimal // Signed
	Memo          string
	EditorID      *string
	EventID       *string
	TransactionID *string
}

// ledgerRecorder appends entries to a club's running-balance journal. Callers hold the
// club account lock so the latest entry cannot move underneath them.
type ledgerRecorder struct{}

func (ledgerRecorder) Append(ctx context.Context, repos portsrepo.RepositoryProvider, p AppendParams, now time.Time) (*domain.LedgerEntry, error) {
	latest, err := repos.LedgerRepo.FindLatestEntry(ctx, p.ClubID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest ledger entry: %w", err)
	}

	entry, err := domain.NextEntry(latest, domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		ClubID:        p.ClubID,
		AccountID:     p.AccountID,
		EventID:       p.EventID,
		TransactionID: p.TransactionID,
		EntryType:     p.Type,
		Amount:        p.Amount,
		Memo:          p.Memo,
		EditorID:      p.EditorID,
		CreatedAt:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := repos.LedgerRepo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save ledger entry: %w", err)
	}
	return &entry, nil
}
