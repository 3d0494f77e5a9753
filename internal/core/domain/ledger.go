package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType labels a ledger entry.
type EntryType string

const (
	EntryDeposit    EntryType = "DEPOSIT"
	EntryWithdraw   EntryType = "WITHDRAW"
	EntryIncome     EntryType = "INCOME"
	EntryExpense    EntryType = "EXPENSE"
	EntryAdjustment EntryType = "ADJUSTMENT"
)

// EntryTypeFor maps a bank transaction direction to its ledger entry type.
func EntryTypeFor(inout InoutType) EntryType {
	if inout == Deposit {
		return EntryDeposit
	}
	return EntryWithdraw
}

// ValidateSign enforces the ledger sign convention: inbound entries are positive,
// outbound entries negative and adjustments non-zero in either direction.
func (t EntryType) ValidateSign(amount decimal.Decimal) error {
	switch t {
	case EntryDeposit, EntryIncome:
		if !amount.IsPositive() {
			return fmt.Errorf("%s entry amount must be positive, got %s", t, amount)
		}
	case EntryWithdraw, EntryExpense:
		if !amount.IsNegative() {
			return fmt.Errorf("%s entry amount must be negative, got %s", t, amount)
		}
	case EntryAdjustment:
		if amount.IsZero() {
			return fmt.Errorf("%s entry amount must not be zero", t)
		}
	default:
		return fmt.Errorf("unknown entry type %q", t)
	}
	return nil
}

// LedgerEntry is one immutable line of a club's journal.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`
	ClubID        string          `json:"clubID"`
	AccountID     string          `json:"accountID"`
	EventID       *string         `json:"eventID,omitempty"`
	TransactionID *string         `json:"transactionID,omitempty"` // Source bank transaction, if any
	EntryType     EntryType       `json:"entryType"`
	Amount        decimal.Decimal `json:"amount"` // Signed
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Memo          string          `json:"memo"`
	EditorID      *string         `json:"editorID,omitempty"` // nil for system-generated entries
	CreatedAt     time.Time       `json:"createdAt"`
}

// NextEntry builds the entry that follows prev (nil for the first entry of a club).
// The caller supplies identity and timestamps.
func NextEntry(prev *LedgerEntry, entry LedgerEntry) (LedgerEntry, error) {
	if err := entry.EntryType.ValidateSign(entry.Amount); err != nil {
		return LedgerEntry{}, err
	}
	balance := decimal.Zero
	if prev != nil {
		balance = prev.BalanceAfter
	}
	entry.BalanceAfter = balance.Add(entry.Amount)
	return entry, nil
}

// VerifyChain checks that entries, ordered by creation, form a running balance starting at opening.
// It returns the index of the first broken entry, or -1.
func VerifyChain(opening decimal.Decimal, entries []LedgerEntry) int {
	balance := opening
	for i, e := range entries {
		balance = balance.Add(e.Amount)
		if !balance.Equal(e.BalanceAfter) {
			return i
		}
	}
	return -1
}
