package dto

import (
	"time"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
)

// SyncRequest holds the optional date range of a sync. Both are YYYY-MM-DD.
type SyncRequest struct {
	From string `form:"from" json:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" json:"to" binding:"omitempty,datetime=2006-01-02"`
}

// SyncResponse lists the ledger entries and matches produced by one sync cycle.
type SyncResponse struct {
	Ingested int                      `json:"ingested"`
	Entries  []LedgerEntryResponse    `json:"entries"`
	Matched  []PaymentRequestResponse `json:"matched"`
}

// ListTransactionsParams holds the query of the processed-transactions listing.
type ListTransactionsParams struct {
	From      time.Time
	To        time.Time
	Limit     int
	NextToken *string
}

// ListTransactionsQuery is the raw query string form of ListTransactionsParams.
type ListTransactionsQuery struct {
	From      string  `form:"from" binding:"required,datetime=2006-01-02"`
	To        string  `form:"to" binding:"required,datetime=2006-01-02"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken *string `form:"next_token"`
}

// ListTransactionsResponse is a page of annotated transactions.
type ListTransactionsResponse struct {
	Transactions []domain.AnnotatedTransaction `json:"transactions"`
	NextToken    *string                       `json:"nextToken,omitempty"`
}

// UnmatchedResponse pairs what the bank saw but nobody claimed with what is still expected.
type UnmatchedResponse struct {
	Transactions []domain.BankTransaction `json:"transactions"`
	Requests     []PaymentRequestResponse `json:"requests"`
}

// ExpireResponse reports how many requests a sweep expired.
type ExpireResponse struct {
	Expired int `json:"expired"`
}
