package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/SscSPs/club_ledger_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/club_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/club_ledger_app/internal/dto"
	"github.com/SscSPs/club_ledger_app/internal/utils"
	"github.com/SscSPs/club_ledger_app/internal/utils/accounting"
)

const (
	refundLeadDays  = 3
	refundRangeDays = 10
)

// settlementService implements per-event fee collection, settlement and refund payout.
type settlementService struct {
	BaseService
	repos     portsrepo.RepositoryProvider
	txManager portsrepo.TransactionManager
	gateways  gateways.GatewayResolver
	history   transactionHistory
	recorder  ledgerRecorder
}

// NewSettlementService creates a new SettlementSvc.
func NewSettlementService(repos portsrepo.RepositoryProvider, txManager portsrepo.TransactionManager, resolver gateways.GatewayResolver, opts ...Option) portssvc.SettlementSvc {
	return &settlementService{
		BaseService: newBaseService(opts),
		repos:       repos,
		txManager:   txManager,
		gateways:    resolver,
	}
}

var _ portssvc.SettlementSvc = (*settlementService)(nil)

func (s *settlementService) CollectEntryFees(ctx context.Context, clubID, eventID, actorID string) ([]domain.PaymentRequest, error) {
	created := []domain.PaymentRequest{}
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		event, err := requireEvent(ctx, repos, clubID, eventID)
		if err != nil {
			return err
		}
		if event.Status == domain.EventClosed {
			return fmt.Errorf("event %s: %w", eventID, apperrors.ErrConflict)
		}
		if !event.EntryFee.IsPositive() {
			return fmt.Errorf("event %s has no entry fee: %w", eventID, apperrors.ErrValidation)
		}

		existing, err := repos.PaymentRequestRepo.ListRequestsByEvent(ctx, clubID, eventID)
		if err != nil {
			return fmt.Errorf("failed to list event requests: %w", err)
		}
		requested := make(map[string]bool, len(existing))
		for _, r := range existing {
			if r.RequestType == domain.RequestDeposit {
				requested[r.MemberID] = true
			}
		}

		now := s.Now()
		expected := domain.DateOnly(event.EventDate.In(s.location))
		expiresAt := expected.AddDate(0, 0, 1)
		for _, memberID := range event.ParticipantIDs {
			if requested[memberID] {
				continue
			}
			member, err := repos.MemberRepo.FindMemberByID(ctx, memberID)
			if err != nil {
				return fmt.Errorf("failed to load member %s: %w", memberID, err)
			}
			if member == nil {
				return fmt.Errorf("participant %s: %w", memberID, apperrors.ErrNotFound)
			}

			evID := event.EventID
			expiry := expiresAt
			req := domain.PaymentRequest{
				RequestID:      uuid.NewString(),
				ClubID:         clubID,
				MemberID:       member.MemberID,
				MemberName:     member.DisplayName(),
				RequestType:    domain.RequestDeposit,
				ExpectedAmount: event.EntryFee,
				ExpectedDate:   expected,
				EventID:        &evID,
				ExpiresAt:      &expiry,
				Status:         domain.RequestPending,
				AuditFields:    newAudit(now, actorID),
			}
			if err := repos.PaymentRequestRepo.SaveRequest(ctx, req); err != nil {
				return fmt.Errorf("failed to save entry fee request: %w", err)
			}
			requested[memberID] = true
			created = append(created, req)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Entry fees requested",
		slog.String("club_id", clubID),
		slog.String("event_id", eventID),
		slog.Int("count", len(created)))
	return created, nil
}

func (s *settlementService) SettleAndRefund(ctx context.Context, clubID, eventID, actorID string) (*domain.Settlement, error) {
	var settlement domain.Settlement
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		if _, err := lockAccount(ctx, repos, clubID); err != nil {
			return err
		}
		event, err := requireEvent(ctx, repos, clubID, eventID)
		if err != nil {
			return err
		}
		now := s.Now()
		closed, err := domain.CloseEvent(*event, actorID, now)
		if err != nil {
			return fmt.Errorf("event %s: %w", eventID, apperrors.ErrConflict)
		}

		requests, err := repos.PaymentRequestRepo.ListRequestsByEvent(ctx, clubID, eventID)
		if err != nil {
			return fmt.Errorf("failed to list event requests: %w", err)
		}
		entries, err := repos.LedgerRepo.ListEntriesByEvent(ctx, clubID, eventID)
		if err != nil {
			return fmt.Errorf("failed to list event ledger entries: %w", err)
		}

		payers := accounting.DistinctPayers(requests)
		income := accounting.TotalIncome(requests)
		expense := accounting.TotalExpense(entries)
		balance := income.Sub(expense)
		perPerson, remainder := accounting.SplitRefund(balance, len(payers))

		settlement = domain.Settlement{
			EventID:         eventID,
			TotalIncome:     income,
			TotalExpense:    expense,
			Balance:         balance,
			PayerCount:      len(payers),
			RefundPerPerson: perPerson,
			Remainder:       remainder,
			Refunds:         []domain.PaymentRequest{},
		}

		if perPerson.IsPositive() {
			expected := domain.DateOnly(now).AddDate(0, 0, refundLeadDays)
			for _, payer := range payers {
				evID := eventID
				rangeDays := refundRangeDays
				refund := domain.PaymentRequest{
					RequestID:      uuid.NewString(),
					ClubID:         clubID,
					MemberID:       payer.MemberID,
					MemberName:     payer.MemberName,
					RequestType:    domain.RequestSettlement,
					ExpectedAmount: perPerson,
					ExpectedDate:   expected,
					DateRangeDays:  &rangeDays,
					EventID:        &evID,
					Status:         domain.RequestPending,
					AuditFields:    newAudit(now, actorID),
				}
				if err := repos.PaymentRequestRepo.SaveRequest(ctx, refund); err != nil {
					return fmt.Errorf("failed to save refund request: %w", err)
				}
				settlement.Refunds = append(settlement.Refunds, refund)
			}
		}

		if err := repos.EventRepo.UpdateEventStatus(ctx, closed); err != nil {
			return fmt.Errorf("failed to close event %s: %w", eventID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Event settled",
		slog.String("club_id", clubID),
		slog.String("event_id", eventID),
		slog.String("balance", settlement.Balance.String()),
		slog.Int("refunds", len(settlement.Refunds)))
	return &settlement, nil
}

func (s *settlementService) DisburseRefund(ctx context.Context, requestID string, dest dto.DisburseRefundRequest, actorID string) (*domain.LedgerEntry, error) {
	req, err := requireRequest(ctx, s.repos, requestID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	if req.RequestType != domain.RequestSettlement {
		return nil, fmt.Errorf("payment request %s is not a settlement: %w", requestID, apperrors.ErrValidation)
	}
	if !req.IsMatchable(now) {
		return nil, fmt.Errorf("payment request %s: %w: %w", requestID, apperrors.ErrValidation, domain.ErrRequestNotMatchable)
	}
	club, err := requireClub(ctx, s.repos, req.ClubID)
	if err != nil {
		return nil, err
	}
	account, err := requireAccount(ctx, s.repos, req.ClubID)
	if err != nil {
		return nil, err
	}
	gateway, ok := s.gateways.Gateway(account.BankCode)
	if !ok {
		return nil, fmt.Errorf("unsupported bank code %q: %w", account.BankCode, apperrors.ErrValidation)
	}

	description := fmt.Sprintf("refund %s %s", req.MemberName, utils.FormatWithPrecision(req.ExpectedAmount, 0))
	result, err := gateway.Refund(ctx, gateways.RefundRequest{
		FromAccountNumber: account.AccountNumber,
		ToAccountNumber:   dest.AccountNumber,
		ToBankCode:        dest.BankCode,
		Amount:            req.ExpectedAmount,
		Description:       description,
	})
	if err != nil {
		s.LogError(ctx, err, "Refund transfer failed", slog.String("request_id", requestID))
		return nil, err
	}

	var entry *domain.LedgerEntry
	err = s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		locked, err := lockAccount(ctx, repos, req.ClubID)
		if err != nil {
			return err
		}
		current, err := requireRequest(ctx, repos, requestID)
		if err != nil {
			return err
		}

		// Mirror the transfer exactly as a later sync would ingest it, so that sync skips it.
		raw := domain.RawTransaction{
			OccurredAt:   result.OccurredAt,
			Amount:       req.ExpectedAmount.Neg(),
			BalanceAfter: result.BalanceAfter,
			Description:  result.Description,
			UniqueKey:    result.UniqueKey,
		}
		if raw.Description == "" {
			raw.Description = description
		}
		record, isNew, err := s.history.Ingest(ctx, repos, req.ClubID, locked.AccountID, raw, now)
		if err != nil {
			return err
		}
		if !isNew {
			return fmt.Errorf("refund transaction %s already recorded: %w", record.TransactionID, apperrors.ErrConflict)
		}

		txID := record.TransactionID
		editor := actorID
		entry, err = s.recorder.Append(ctx, repos, AppendParams{
			ClubID:        req.ClubID,
			AccountID:     locked.AccountID,
			Type:          domain.EntryWithdraw,
			Amount:        record.SignedAmount(),
			Memo:          record.PrintContent,
			EditorID:      &editor,
			EventID:       eventFor(*club, current.EventID),
			TransactionID: &txID,
		}, now)
		if err != nil {
			return err
		}

		matched, err := domain.MatchRequest(*current, txID, domain.MatchManual, actorID, now)
		if err != nil {
			if errors.Is(err, domain.ErrRequestNotMatchable) {
				return fmt.Errorf("payment request %s: %w: %w", requestID, apperrors.ErrConflict, err)
			}
			return err
		}
		if err := repos.PaymentRequestRepo.UpdateRequestStatus(ctx, matched); err != nil {
			return fmt.Errorf("failed to update payment request %s: %w", requestID, err)
		}
		return repos.BankTransactionRepo.MarkMatched(ctx, txID)
	})
	if err != nil {
		// The money has left the account; the next sync ingests the transfer as unmatched.
		s.LogError(ctx, err, "Failed to record disbursed refund", slog.String("request_id", requestID))
		return nil, err
	}

	s.LogInfo(ctx, "Refund disbursed",
		slog.String("request_id", requestID),
		slog.String("amount", req.ExpectedAmount.String()))
	return entry, nil
}

// eventFor returns the event to attribute a ledger entry to; operating-fee clubs never attribute.
func eventFor(club domain.Club, eventID *string) *string {
	if !club.IsFairSettlement() {
		return nil
	}
	return eventID
}

func newAudit(now time.Time, actorID string) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}
}
