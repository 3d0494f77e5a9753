package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/SscSPs/club_ledger_app/internal/core/matching"
	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/club_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/club_ledger_app/internal/dto"
)

const (
	defaultTransactionPageSize = 50
	maxTransactionPageSize     = 200
)

// reconciliationService exposes reconciliation state and the transitions officers and timers trigger.
type reconciliationService struct {
	BaseService
	repos     portsrepo.RepositoryProvider
	txManager portsrepo.TransactionManager
}

// NewReconciliationService creates a new ReconciliationSvcFacade.
func NewReconciliationService(repos portsrepo.RepositoryProvider, txManager portsrepo.TransactionManager, opts ...Option) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		BaseService: newBaseService(opts),
		repos:       repos,
		txManager:   txManager,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

func (s *reconciliationService) ListTransactions(ctx context.Context, clubID string, params dto.ListTransactionsParams) ([]domain.AnnotatedTransaction, *string, error) {
	start := domain.DateOnly(params.From.In(s.location))
	end := domain.DateOnly(params.To.In(s.location)).AddDate(0, 0, 1)
	if !start.Before(end) {
		return nil, nil, fmt.Errorf("from must not be after to: %w", apperrors.ErrValidation)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultTransactionPageSize
	}
	if limit > maxTransactionPageSize {
		limit = maxTransactionPageSize
	}
	if _, err := requireClub(ctx, s.repos, clubID); err != nil {
		return nil, nil, err
	}

	txs, nextToken, err := s.repos.BankTransactionRepo.ListTransactionsByRange(ctx, clubID, start, end, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("club_id", clubID))
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	ids := make([]string, len(txs))
	for i, tx := range txs {
		ids[i] = tx.TransactionID
	}
	byTx := map[string]domain.PaymentRequest{}
	if len(ids) > 0 {
		byTx, err = s.repos.PaymentRequestRepo.FindRequestsByTransactionIDs(ctx, ids)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load match annotations: %w", err)
		}
	}

	annotated := make([]domain.AnnotatedTransaction, len(txs))
	for i, tx := range txs {
		annotated[i] = domain.AnnotatedTransaction{BankTransaction: tx}
		if req, ok := byTx[tx.TransactionID]; ok {
			req := req
			annotated[i].MatchedRequest = &req
		}
	}
	return annotated, nextToken, nil
}

func (s *reconciliationService) ListUnmatched(ctx context.Context, clubID string) ([]domain.BankTransaction, []domain.PaymentRequest, error) {
	if _, err := requireClub(ctx, s.repos, clubID); err != nil {
		return nil, nil, err
	}
	txs, err := s.repos.BankTransactionRepo.ListUnmatchedTransactions(ctx, clubID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list unmatched transactions: %w", err)
	}
	reqs, err := s.repos.PaymentRequestRepo.ListMatchableRequests(ctx, clubID, s.Now())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list matchable requests: %w", err)
	}
	return txs, reqs, nil
}

func (s *reconciliationService) ManualMatch(ctx context.Context, requestID, transactionID, actorID string) (*domain.PaymentRequest, error) {
	var matched domain.PaymentRequest
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		req, err := requireRequest(ctx, repos, requestID)
		if err != nil {
			return err
		}
		club, err := requireClub(ctx, repos, req.ClubID)
		if err != nil {
			return err
		}
		if _, err := lockAccount(ctx, repos, req.ClubID); err != nil {
			return err
		}

		tx, err := repos.BankTransactionRepo.FindTransactionByID(ctx, transactionID)
		if err != nil {
			return fmt.Errorf("failed to load transaction %s: %w", transactionID, err)
		}
		if tx == nil || tx.ClubID != req.ClubID {
			return fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
		}
		if tx.Matched {
			return fmt.Errorf("transaction %s is already matched: %w", transactionID, apperrors.ErrConflict)
		}
		claimed, err := repos.PaymentRequestRepo.FindRequestsByTransactionIDs(ctx, []string{transactionID})
		if err != nil {
			return fmt.Errorf("failed to check transaction claims: %w", err)
		}
		if _, ok := claimed[transactionID]; ok {
			return fmt.Errorf("transaction %s is already claimed: %w", transactionID, apperrors.ErrConflict)
		}
		if !matching.DirectionMatches(*tx, *req) {
			return fmt.Errorf("%s transaction cannot satisfy a %s request: %w", tx.InoutType, req.RequestType, apperrors.ErrValidation)
		}

		matched, err = domain.MatchRequest(*req, tx.TransactionID, domain.MatchManual, actorID, s.Now())
		if err != nil {
			if errors.Is(err, domain.ErrRequestNotMatchable) {
				return fmt.Errorf("payment request %s: %w: %w", requestID, apperrors.ErrValidation, err)
			}
			return err
		}
		return bindMatch(ctx, repos, *club, *tx, matched)
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Payment request matched",
		slog.String("request_id", requestID),
		slog.String("transaction_id", transactionID),
		slog.String("match_type", string(domain.MatchManual)))
	return &matched, nil
}

func (s *reconciliationService) ExpireOldRequests(ctx context.Context, clubID string) (int, error) {
	expired := 0
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		now := s.Now()
		pending, err := repos.PaymentRequestRepo.ListExpiredPendingRequests(ctx, clubID, now)
		if err != nil {
			return fmt.Errorf("failed to list expired requests: %w", err)
		}
		for _, req := range pending {
			next, ok := domain.ExpireRequest(req, now)
			if !ok {
				continue
			}
			if err := repos.PaymentRequestRepo.UpdateRequestStatus(ctx, next); err != nil {
				if errors.Is(err, apperrors.ErrConflict) {
					// Matched concurrently; terminal states are never overwritten.
					continue
				}
				return fmt.Errorf("failed to expire request %s: %w", req.RequestID, err)
			}
			expired++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		s.LogInfo(ctx, "Expired payment requests", slog.String("club_id", clubID), slog.Int("count", expired))
	}
	return expired, nil
}

func (s *reconciliationService) ExpireAll(ctx context.Context) (int, error) {
	clubIDs, err := s.repos.ClubRepo.ListClubIDsWithAccount(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list clubs: %w", err)
	}
	total := 0
	var errs []error
	for _, clubID := range clubIDs {
		n, err := s.ExpireOldRequests(ctx, clubID)
		if err != nil {
			s.LogError(ctx, err, "Expiry sweep failed", slog.String("club_id", clubID))
			errs = append(errs, fmt.Errorf("club %s: %w", clubID, err))
			continue
		}
		total += n
	}
	return total, errors.Join(errs...)
}
