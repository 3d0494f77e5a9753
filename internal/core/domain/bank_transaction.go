package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InoutType is the direction of money movement on the club account.
type InoutType string

const (
	Deposit  InoutType = "DEPOSIT"
	Withdraw InoutType = "WITHDRAW"
)

// InoutTypeOf derives the direction from a bank-reported signed amount.
func InoutTypeOf(amount decimal.Decimal) InoutType {
	if amount.IsPositive() {
		return Deposit
	}
	return Withdraw
}

// RawTransaction is one line as returned by a bank gateway, before ingestion.
type RawTransaction struct {
	OccurredAt   time.Time       `json:"occurredAt"`
	Amount       decimal.Decimal `json:"amount"` // Signed: positive is inbound
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Description  string          `json:"description"`
	UniqueKey    string          `json:"uniqueKey,omitempty"` // Empty when the provider has no native id
}

// BankTransaction is an ingested bank transaction line.
// Only Matched ever changes after insert.
type BankTransaction struct {
	TransactionID string          `json:"transactionID"`
	ClubID        string          `json:"clubID"`
	AccountID     string          `json:"accountID"`
	OccurredAt    time.Time       `json:"occurredAt"`
	Amount        decimal.Decimal `json:"amount"` // Absolute value
	InoutType     InoutType       `json:"inoutType"`
	PrintContent  string          `json:"printContent"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	UniqueKey     string          `json:"uniqueKey"`
	Matched       bool            `json:"matched"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// SignedAmount returns the amount with the sign implied by its direction.
func (t BankTransaction) SignedAmount() decimal.Decimal {
	if t.InoutType == Withdraw {
		return t.Amount.Neg()
	}
	return t.Amount
}

// AnnotatedTransaction is a bank transaction together with the request it was matched to, if any.
type AnnotatedTransaction struct {
	BankTransaction
	MatchedRequest *PaymentRequest `json:"matchedRequest,omitempty"`
}

// DedupKey returns the provider key when present, otherwise a deterministic key derived
// from date, time, direction, amount and description. Repeated polls of the same range
// must yield the same key for the same bank event.
func (r RawTransaction) DedupKey() string {
	if r.UniqueKey != "" {
		return r.UniqueKey
	}
	parts := []string{
		r.OccurredAt.Format("20060102"),
		r.OccurredAt.Format("150405"),
		string(InoutTypeOf(r.Amount)),
		r.Amount.Abs().String(),
		strings.TrimSpace(r.Description),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
