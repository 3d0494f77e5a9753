package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/SscSPs/club_ledger_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/club_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/club_ledger_app/internal/middleware"
)

// DefaultBootstrapDays is how far back the first sync of a club looks.
const DefaultBootstrapDays = 30

// syncService orchestrates one reconciliation cycle: fetch, ingest, record, match.
type syncService struct {
	BaseService
	repos         portsrepo.RepositoryProvider
	txManager     portsrepo.TransactionManager
	gateways      gateways.GatewayResolver
	history       transactionHistory
	recorder      ledgerRecorder
	engine        matchingEngine
	bootstrapDays int
	fetchTimeout  time.Duration
}

// SyncConfig holds the tunables of the sync orchestrator.
type SyncConfig struct {
	BootstrapDays int
	FetchTimeout  time.Duration // Zero leaves the caller's deadline untouched
}

// NewSyncService creates a new SyncSvc.
func NewSyncService(repos portsrepo.RepositoryProvider, txManager portsrepo.TransactionManager, resolver gateways.GatewayResolver, cfg SyncConfig, opts ...Option) portssvc.SyncSvc {
	if cfg.BootstrapDays <= 0 {
		cfg.BootstrapDays = DefaultBootstrapDays
	}
	return &syncService{
		BaseService:   newBaseService(opts),
		repos:         repos,
		txManager:     txManager,
		gateways:      resolver,
		bootstrapDays: cfg.BootstrapDays,
		fetchTimeout:  cfg.FetchTimeout,
	}
}

var _ portssvc.SyncSvc = (*syncService)(nil)

func (s *syncService) Sync(ctx context.Context, clubID string, from, to *time.Time) (*portssvc.SyncResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("club_id", clubID))

	club, err := requireClub(ctx, s.repos, clubID)
	if err != nil {
		return nil, err
	}
	account, err := requireAccount(ctx, s.repos, clubID)
	if err != nil {
		return nil, err
	}
	gateway, ok := s.gateways.Gateway(account.BankCode)
	if !ok {
		return nil, fmt.Errorf("unsupported bank code %q: %w", account.BankCode, apperrors.ErrValidation)
	}

	start, end, err := s.resolveRange(ctx, clubID, from, to)
	if err != nil {
		return nil, err
	}
	result := &portssvc.SyncResult{Entries: []domain.LedgerEntry{}, Matched: []domain.PaymentRequest{}}
	if start.After(end) {
		logger.Debug("Sync range is empty", slog.Time("from", start), slog.Time("to", end))
		return result, nil
	}

	// The provider is called before any transaction is opened: a failed fetch writes nothing.
	raws, err := s.fetch(ctx, gateway, account.AccountNumber, start, end)
	if err != nil {
		logger.Error("Bank provider call failed", slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Fetched bank transactions", slog.Int("count", len(raws)), slog.Time("from", start), slog.Time("to", end))

	err = s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		locked, err := lockAccount(ctx, repos, clubID)
		if err != nil {
			return err
		}

		now := s.Now()
		fresh := make([]domain.BankTransaction, 0, len(raws))
		for _, raw := range raws {
			if raw.Amount.IsZero() {
				// Nothing moved; no ledger entry could carry it.
				logger.Warn("Skipping zero-amount bank transaction",
					slog.Time("occurred_at", raw.OccurredAt),
					slog.String("description", raw.Description))
				continue
			}
			record, isNew, err := s.history.Ingest(ctx, repos, clubID, locked.AccountID, raw, now)
			if err != nil {
				return err
			}
			if !isNew {
				continue
			}
			txID := record.TransactionID
			entry, err := s.recorder.Append(ctx, repos, AppendParams{
				ClubID:        clubID,
				AccountID:     locked.AccountID,
				Type:          domain.EntryTypeFor(record.InoutType),
				Amount:        record.SignedAmount(),
				Memo:          record.PrintContent,
				TransactionID: &txID,
			}, now)
			if err != nil {
				return err
			}
			fresh = append(fresh, record)
			result.Entries = append(result.Entries, *entry)
		}

		matched, err := s.engine.AutoMatch(ctx, repos, *club, fresh, now, s.location)
		if err != nil {
			return err
		}
		result.Ingested = len(fresh)
		result.Matched = append(result.Matched, matched...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Sync completed",
		slog.Int("ingested", result.Ingested),
		slog.Int("matched", len(result.Matched)))
	return result, nil
}

// resolveRange uses the caller's bounds only when both are given. Otherwise both are derived:
// from is the day after the latest ledger entry, or the bootstrap window for a club with an
// empty ledger, and to is today.
func (s *syncService) resolveRange(ctx context.Context, clubID string, from, to *time.Time) (time.Time, time.Time, error) {
	if from != nil && to != nil {
		return domain.DateOnly(from.In(s.location)), domain.DateOnly(to.In(s.location)), nil
	}

	today := s.Today()
	latest, err := s.repos.LedgerRepo.FindLatestEntry(ctx, clubID)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("failed to load latest ledger entry: %w", err)
	}
	if latest == nil {
		return today.AddDate(0, 0, -s.bootstrapDays), today, nil
	}
	return domain.DateOnly(latest.CreatedAt.In(s.location)).AddDate(0, 0, 1), today, nil
}

func (s *syncService) fetch(ctx context.Context, gateway gateways.BankGateway, accountNumber string, from, to time.Time) ([]domain.RawTransaction, error) {
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}
	return gateway.GetTransactions(ctx, accountNumber, from, to)
}

func (s *syncService) SyncAll(ctx context.Context) (int, int) {
	logger := middleware.GetLoggerFromCtx(ctx)

	clubIDs, err := s.repos.ClubRepo.ListClubIDsWithAccount(ctx)
	if err != nil {
		logger.Error("Failed to list clubs for sync", slog.String("error", err.Error()))
		return 0, 0
	}

	synced, failed := 0, 0
	for _, clubID := range clubIDs {
		if ctx.Err() != nil {
			break
		}
		if _, err := s.Sync(ctx, clubID, nil, nil); err != nil {
			failed++
			logger.Error("Club sync failed", slog.String("club_id", clubID), slog.String("error", err.Error()))
			continue
		}
		synced++
	}
	return synced, failed
}
