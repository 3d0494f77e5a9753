package services

import (
	"context"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/SscSPs/club_ledger_app/internal/dto"
)

// ReconciliationReaderSvc exposes the matched and unmatched views of the transaction history
type ReconciliationReaderSvc interface {
	// ListTransactions returns a page of processed transactions annotated with the request they satisfied.
	ListTransactions(ctx context.Context, clubID string, params dto.ListTransactionsParams) ([]domain.AnnotatedTransaction, *string, error)

	// ListUnmatched returns transactions no request claimed together with requests still waiting for money.
	ListUnmatched(ctx context.Context, clubID string) ([]domain.BankTransaction, []domain.PaymentRequest, error)
}

// ReconciliationWriterSvc defines the officer and housekeeping transitions of payment requests
type ReconciliationWriterSvc interface {
	// ManualMatch binds a request to a transaction chosen by an officer, bypassing the name rule.
	ManualMatch(ctx context.Context, requestID, transactionID, actorID string) (*domain.PaymentRequest, error)

	// ExpireOldRequests moves the club's pending requests past their expiry to EXPIRED.
	ExpireOldRequests(ctx context.Context, clubID string) (int, error)

	// ExpireAll sweeps every club with a registered account.
	ExpireAll(ctx context.Context) (int, error)
}

// ReconciliationSvcFacade combines all reconciliation service interfaces
type ReconciliationSvcFacade interface {
	ReconciliationReaderSvc
	ReconciliationWriterSvc
}
