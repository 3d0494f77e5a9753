package gateways

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
)

// CreateAccountRequest asks the provider to open an account for a club.
type CreateAccountRequest struct {
	ClubID     string
	HolderName string
}

// AccountResult is the account a provider opened.
type AccountResult struct {
	AccountNumber string
	HolderName    string
}

// RefundRequest asks the provider to transfer money out of the club account.
type RefundRequest struct {
	FromAccountNumber string
	ToAccountNumber   string
	ToBankCode        string
	Amount            decimal.Decimal
	Description       string
}

// RefundResult describes the executed transfer as it will appear in the statement.
type RefundResult struct {
	OccurredAt   time.Time
	BalanceAfter decimal.Decimal
	Description  string
	UniqueKey    string // Empty when the provider has no native id
}

// OwnerResult is the registered holder of an account.
type OwnerResult struct {
	AccountNumber string
	HolderName    string
}

// BankGateway is the external bank provider. The reconciliation core only needs GetTransactions;
// the other operations back account registration and refund disbursement.
type BankGateway interface {
	GetTransactions(ctx context.Context, accountNumber string, from, to time.Time) ([]domain.RawTransaction, error)
	CreateAccount(ctx context.Context, req CreateAccountRequest) (*AccountResult, error)
	Refund(ctx context.Context, req RefundRequest) (*RefundResult, error)
	InquireAccountOwner(ctx context.Context, accountNumber string) (*OwnerResult, error)
}

// GatewayResolver picks the gateway serving a bank code.
type GatewayResolver interface {
	Gateway(bankCode string) (BankGateway, bool)
}
