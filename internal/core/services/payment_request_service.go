package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/club_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/club_ledger_app/internal/dto"
)

type paymentRequestService struct {
	BaseService
	repos portsrepo.RepositoryProvider
}

// NewPaymentRequestService creates a new PaymentRequestSvc.
func NewPaymentRequestService(repos portsrepo.RepositoryProvider, opts ...Option) portssvc.PaymentRequestSvc {
	return &paymentRequestService{
		BaseService: newBaseService(opts),
		repos:       repos,
	}
}

var _ portssvc.PaymentRequestSvc = (*paymentRequestService)(nil)

func (s *paymentRequestService) CreateRequest(ctx context.Context, clubID string, req dto.CreatePaymentRequestRequest, actorID string) (*domain.PaymentRequest, error) {
	if !req.ExpectedAmount.IsPositive() {
		return nil, fmt.Errorf("expected amount must be positive: %w", apperrors.ErrValidation)
	}
	expected, err := s.ParseDate(req.ExpectedDate)
	if err != nil {
		return nil, fmt.Errorf("invalid expected date %q: %w", req.ExpectedDate, apperrors.ErrValidation)
	}
	now := s.Now()
	if req.ExpiresAt != nil && !req.ExpiresAt.After(now) {
		return nil, fmt.Errorf("expiry must be in the future: %w", apperrors.ErrValidation)
	}

	if _, err := requireClub(ctx, s.repos, clubID); err != nil {
		return nil, err
	}
	member, err := s.repos.MemberRepo.FindMemberByID(ctx, req.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to load member %s: %w", req.MemberID, err)
	}
	if member == nil || member.ClubID != clubID {
		return nil, fmt.Errorf("member %s: %w", req.MemberID, apperrors.ErrNotFound)
	}
	if member.Status != domain.MemberActive {
		return nil, fmt.Errorf("member %s is not active: %w", req.MemberID, apperrors.ErrValidation)
	}
	if req.EventID != nil {
		if _, err := requireEvent(ctx, s.repos, clubID, *req.EventID); err != nil {
			return nil, err
		}
	}

	pr := domain.PaymentRequest{
		RequestID:      uuid.NewString(),
		ClubID:         clubID,
		MemberID:       member.MemberID,
		MemberName:     member.DisplayName(),
		RequestType:    req.RequestType,
		ExpectedAmount: req.ExpectedAmount,
		ExpectedDate:   expected,
		DateRangeDays:  req.DateRangeDays,
		EventID:        req.EventID,
		ExpiresAt:      req.ExpiresAt,
		Status:         domain.RequestPending,
		AuditFields:    newAudit(now, actorID),
	}
	if err := s.repos.PaymentRequestRepo.SaveRequest(ctx, pr); err != nil {
		s.LogError(ctx, err, "Failed to save payment request", slog.String("club_id", clubID))
		return nil, fmt.Errorf("failed to save payment request: %w", err)
	}

	s.LogInfo(ctx, "Payment request created",
		slog.String("request_id", pr.RequestID),
		slog.String("member_id", pr.MemberID),
		slog.String("request_type", string(pr.RequestType)))
	return &pr, nil
}

func (s *paymentRequestService) GetRequest(ctx context.Context, requestID string) (*domain.PaymentRequest, error) {
	return requireRequest(ctx, s.repos, requestID)
}
