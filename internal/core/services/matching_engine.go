package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/SscSPs/club_ledger_app/internal/core/matching"
	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/club_ledger_app/internal/middleware"
)

// matchingEngine loads the matching snapshot, runs matching.Plan and persists its outcome.
type matchingEngine struct{}

// AutoMatch reconciles transactions, the newly ingested subset of a sync cycle, against the club's
// matchable requests. Date windows are evaluated in loc. It returns the requests it bound.
func (matchingEngine) AutoMatch(ctx context.Context, repos portsrepo.RepositoryProvider, club domain.Club, transactions []domain.BankTransaction, now time.Time, loc *time.Location) ([]domain.PaymentRequest, error) {
	if len(transactions) == 0 {
		return nil, nil
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	ids := make([]string, len(transactions))
	for i, tx := range transactions {
		ids[i] = tx.TransactionID
	}
	claimedBy, err := repos.PaymentRequestRepo.FindRequestsByTransactionIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load claimed transactions: %w", err)
	}
	claimed := make(map[string]bool, len(claimedBy))
	for id := range claimedBy {
		claimed[id] = true
	}

	candidates, err := repos.PaymentRequestRepo.ListMatchableRequests(ctx, club.ClubID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load matchable requests: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	members, err := repos.MemberRepo.ListMembersByClub(ctx, club.ClubID)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	matches := matching.Plan(matching.Input{
		Members:               members,
		Candidates:            candidates,
		Transactions:          transactions,
		ClaimedTransactionIDs: claimed,
		Now:                   now,
		Location:              loc,
	})

	matched := make([]domain.PaymentRequest, 0, len(matches))
	for _, m := range matches {
		if err := bindMatch(ctx, repos, club, m.Transaction, m.Request); err != nil {
			return nil, err
		}
		logger.Info("Payment request matched",
			slog.String("request_id", m.Request.RequestID),
			slog.String("transaction_id", m.Transaction.TransactionID),
			slog.String("match_type", string(domain.MatchAuto)))
		matched = append(matched, m.Request)
	}
	return matched, nil
}

// bindMatch persists a request already moved to MATCHED together with the side effects
// on the transaction and, for fair-settlement clubs, on its ledger entry.
func bindMatch(ctx context.Context, repos portsrepo.RepositoryProvider, club domain.Club, tx domain.BankTransaction, req domain.PaymentRequest) error {
	if err := repos.PaymentRequestRepo.UpdateRequestStatus(ctx, req); err != nil {
		return fmt.Errorf("failed to update payment request %s: %w", req.RequestID, err)
	}
	if err := repos.BankTransactionRepo.MarkMatched(ctx, tx.TransactionID); err != nil {
		return fmt.Errorf("failed to mark transaction %s matched: %w", tx.TransactionID, err)
	}

	if !club.IsFairSettlement() || req.EventID == nil {
		return nil
	}
	entry, err := repos.LedgerRepo.FindEntryByTransactionID(ctx, tx.TransactionID)
	if err != nil {
		return fmt.Errorf("failed to load ledger entry of transaction %s: %w", tx.TransactionID, err)
	}
	if entry == nil || entry.EventID != nil {
		return nil
	}
	if err := repos.LedgerRepo.AttachEvent(ctx, entry.EntryID, *req.EventID); err != nil {
		return fmt.Errorf("failed to attach event to ledger entry %s: %w", entry.EntryID, err)
	}
	return nil
}
