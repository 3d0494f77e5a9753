package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
)

// PaymentRequestReader defines read operations for payment requests
type PaymentRequestReader interface {
	FindRequestByID(ctx context.Context, requestID string) (*domain.PaymentRequest, error)

	// ListMatchableRequests returns PENDING requests not expired at now, in creation order.
	ListMatchableRequests(ctx context.Context, clubID string, now time.Time) ([]domain.PaymentRequest, error)

	// ListExpiredPendingRequests returns PENDING requests whose expiry is before now.
	ListExpiredPendingRequests(ctx context.Context, clubID string, now time.Time) ([]domain.PaymentRequest, error)

	// ListRequestsByEvent returns every request linked to an event, in creation order.
	ListRequestsByEvent(ctx context.Context, clubID, eventID string) ([]domain.PaymentRequest, error)

	// FindRequestsByTransactionIDs maps transaction IDs to the request that references them.
	FindRequestsByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string]domain.PaymentRequest, error)
}

// PaymentRequestWriter defines write operations for payment requests
type PaymentRequestWriter interface {
	SaveRequest(ctx context.Context, req domain.PaymentRequest) error

	// UpdateRequestStatus persists a status transition. Only PENDING rows are updated;
	// updating a terminal row yields apperrors.ErrConflict.
	UpdateRequestStatus(ctx context.Context, req domain.PaymentRequest) error
}

// PaymentRequestRepositoryFacade combines all payment-request repository interfaces
type PaymentRequestRepositoryFacade interface {
	PaymentRequestReader
	PaymentRequestWriter
}
