package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/club_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/club_ledger_app/internal/dto"
)

// ledgerService serves journal queries and officer-entered lines.
type ledgerService struct {
	BaseService
	repos     portsrepo.RepositoryProvider
	txManager portsrepo.TransactionManager
	recorder  ledgerRecorder
}

// NewLedgerService creates a new LedgerSvcFacade.
func NewLedgerService(repos portsrepo.RepositoryProvider, txManager portsrepo.TransactionManager, opts ...Option) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: newBaseService(opts),
		repos:       repos,
		txManager:   txManager,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// dayRange turns an inclusive day range into the half-open interval repositories take.
func (s *ledgerService) dayRange(from, to time.Time) (time.Time, time.Time, error) {
	start := domain.DateOnly(from.In(s.location))
	end := domain.DateOnly(to.In(s.location)).AddDate(0, 0, 1)
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("from must not be after to: %w", apperrors.ErrValidation)
	}
	return start, end, nil
}

func (s *ledgerService) ListEntries(ctx context.Context, clubID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	start, end, err := s.dayRange(from, to)
	if err != nil {
		return nil, err
	}
	if _, err := requireClub(ctx, s.repos, clubID); err != nil {
		return nil, err
	}
	entries, err := s.repos.LedgerRepo.ListEntriesByRange(ctx, clubID, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries", slog.String("club_id", clubID))
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}

func (s *ledgerService) ListEventEntries(ctx context.Context, clubID, eventID string) ([]domain.LedgerEntry, error) {
	if _, err := requireEvent(ctx, s.repos, clubID, eventID); err != nil {
		return nil, err
	}
	entries, err := s.repos.LedgerRepo.ListEntriesByEvent(ctx, clubID, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries of event %s: %w", eventID, err)
	}
	return entries, nil
}

func (s *ledgerService) Statement(ctx context.Context, clubID string, from, to time.Time) (*domain.LedgerStatement, error) {
	entries, err := s.ListEntries(ctx, clubID, from, to)
	if err != nil {
		return nil, err
	}
	st := domain.BuildStatement(clubID, domain.DateOnly(from.In(s.location)), domain.DateOnly(to.In(s.location)), entries)
	if st.BrokenEntryID != nil {
		s.GetLogger(ctx).Warn("Ledger running balance is broken",
			slog.String("club_id", clubID),
			slog.String("entry_id", *st.BrokenEntryID))
	}
	return &st, nil
}

func (s *ledgerService) RecordManualEntry(ctx context.Context, clubID string, req dto.CreateLedgerEntryRequest, actorID string) (*domain.LedgerEntry, error) {
	if strings.TrimSpace(req.Memo) == "" {
		return nil, fmt.Errorf("memo is required: %w", apperrors.ErrValidation)
	}
	if err := req.EntryType.ValidateSign(req.Amount); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	var recorded *domain.LedgerEntry
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		if _, err := requireClub(ctx, repos, clubID); err != nil {
			return err
		}
		if req.EventID != nil {
			if _, err := requireEvent(ctx, repos, clubID, *req.EventID); err != nil {
				return err
			}
		}
		account, err := lockAccount(ctx, repos, clubID)
		if err != nil {
			return err
		}

		editor := actorID
		recorded, err = s.recorder.Append(ctx, repos, AppendParams{
			ClubID:    clubID,
			AccountID: account.AccountID,
			Type:      req.EntryType,
			Amount:    req.Amount,
			Memo:      req.Memo,
			EditorID:  &editor,
			EventID:   req.EventID,
		}, s.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Manual ledger entry recorded",
		slog.String("club_id", clubID),
		slog.String("entry_id", recorded.EntryID),
		slog.String("entry_type", string(recorded.EntryType)))
	return recorded, nil
}
