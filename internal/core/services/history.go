package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
)

// transactionHistory is the deduplicating store of ingested bank transactions.
type transactionHistory struct{}

// Ingest stores raw unless a record with the same dedup key already exists for the club.
// The boolean reports whether a new record was written.
func (transactionHistory) Ingest(ctx context.Context, repos portsrepo.RepositoryProvider, clubID, accountID string, raw domain.RawTransaction, now time.Time) (domain.BankTransaction, bool, error) {
	key := raw.DedupKey()

	existing, err := repos.BankTransactionRepo.FindByUniqueKey(ctx, clubID, key)
	if err != nil {
		return domain.BankTransaction{}, false, fmt.Errorf("failed to look up transaction %s: %w", key, err)
	}
	if existing != nil {
		return *existing, false, nil
	}

	record := domain.BankTransaction{
		TransactionID: uuid.NewString(),
		ClubID:        clubID,
		AccountID:     accountID,
		OccurredAt:    raw.OccurredAt,
		Amount:        raw.Amount.Abs(),
		InoutType:     domain.InoutTypeOf(raw.Amount),
		PrintContent:  raw.Description,
		BalanceAfter:  raw.BalanceAfter,
		UniqueKey:     key,
		CreatedAt:     now,
	}
	if err := repos.BankTransactionRepo.SaveTransaction(ctx, record); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Inserted by another writer after the lookup above.
			dup, findErr := repos.BankTransactionRepo.FindByUniqueKey(ctx, clubID, key)
			if findErr == nil && dup != nil {
				return *dup, false, nil
			}
		}
		return domain.BankTransaction{}, false, fmt.Errorf("failed to save transaction %s: %w", key, err)
	}
	return record, true, nil
}
