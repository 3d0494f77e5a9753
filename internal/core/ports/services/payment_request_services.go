package services

import (
	"context"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/SscSPs/club_ledger_app/internal/dto"
)

// PaymentRequestSvc manages expected payments raised by officers.
type PaymentRequestSvc interface {
	CreateRequest(ctx context.Context, clubID string, req dto.CreatePaymentRequestRequest, actorID string) (*domain.PaymentRequest, error)
	GetRequest(ctx context.Context, requestID string) (*domain.PaymentRequest, error)
}
