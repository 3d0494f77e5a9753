package dto

import (
	"time"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerEntryRequest is an officer recording a manual ledger line (cash expense, correction).
// Amount is signed: outbound entries are negative.
type CreateLedgerEntryRequest struct {
	EntryType domain.EntryType `json:"entryType" binding:"required,oneof=INCOME EXPENSE ADJUSTMENT"`
	Amount    decimal.Decimal  `json:"amount" binding:"required"`
	Memo      string           `json:"memo" binding:"required"`
	EventID   *string          `json:"eventID"`
}

// ListLedgerQuery is the date range of a ledger listing.
type ListLedgerQuery struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID       string           `json:"entryID"`
	EventID       *string          `json:"eventID,omitempty"`
	TransactionID *string          `json:"transactionID,omitempty"`
	EntryType     domain.EntryType `json:"entryType"`
	Amount        decimal.Decimal  `json:"amount"`
	BalanceAfter  decimal.Decimal  `json:"balanceAfter"`
	Memo          string           `json:"memo"`
	EditorID      *string          `json:"editorID,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToLedgerEntryResponse(e domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:       e.EntryID,
		EventID:       e.EventID,
		TransactionID: e.TransactionID,
		EntryType:     e.EntryType,
		Amount:        e.Amount,
		BalanceAfter:  e.BalanceAfter,
		Memo:          e.Memo,
		EditorID:      e.EditorID,
		CreatedAt:     e.CreatedAt,
	}
}

// ToLedgerEntryResponses converts a slice of entries.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToLedgerEntryResponse(e)
	}
	return responses
}
