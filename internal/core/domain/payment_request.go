package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultDateRangeDays is the matching tolerance used when a request does not carry its own.
const DefaultDateRangeDays = 10

var (
	ErrRequestNotMatchable = errors.New("payment request is not matchable")
	ErrRequestNotPending   = errors.New("payment request is not pending")
)

// RequestType is what kind of money movement a payment request expects.
type RequestType string

const (
	RequestDeposit    RequestType = "DEPOSIT"    // Member pays the club
	RequestSettlement RequestType = "SETTLEMENT" // Club refunds a member
)

// RequestStatus is the lifecycle state of a payment request.
type RequestStatus string

const (
	RequestPending RequestStatus = "PENDING"
	RequestMatched RequestStatus = "MATCHED"
	RequestExpired RequestStatus = "EXPIRED"
)

// MatchType records how a request got bound to a transaction.
type MatchType string

const (
	MatchAuto   MatchType = "AUTO"
	MatchManual MatchType = "MANUAL"
)

// PaymentRequest is an expected payment raised by an officer or by settlement.
type PaymentRequest struct {
	RequestID      string          `json:"requestID"`
	ClubID         string          `json:"clubID"`
	MemberID       string          `json:"memberID"`
	MemberName     string          `json:"memberName"`
	RequestType    RequestType     `json:"requestType"`
	ExpectedAmount decimal.Decimal `json:"expectedAmount"`
	ExpectedDate   time.Time       `json:"expectedDate"`
	DateRangeDays  *int            `json:"dateRangeDays,omitempty"`
	EventID        *string         `json:"eventID,omitempty"`
	ExpiresAt      *time.Time      `json:"expiresAt,omitempty"`
	Status         RequestStatus   `json:"status"`

	MatchedTransactionID *string    `json:"matchedTransactionID,omitempty"`
	MatchType            *MatchType `json:"matchType,omitempty"`
	MatchedBy            *string    `json:"matchedBy,omitempty"`
	MatchedAt            *time.Time `json:"matchedAt,omitempty"`
	AuditFields
}

// IsMatchable reports whether the request can still be bound to a transaction at now.
func (r PaymentRequest) IsMatchable(now time.Time) bool {
	if r.Status != RequestPending {
		return false
	}
	return r.ExpiresAt == nil || r.ExpiresAt.After(now)
}

// Window returns the inclusive date window in which a matching transaction may occur, as
// midnights in loc. ExpectedDate is a calendar day; only its year, month and day are used.
func (r PaymentRequest) Window(loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	days := DefaultDateRangeDays
	if r.DateRangeDays != nil {
		days = *r.DateRangeDays
	}
	y, m, d := r.ExpectedDate.Date()
	expected := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return expected.AddDate(0, 0, -days), expected.AddDate(0, 0, days)
}

// MatchRequest returns req bound to transactionID. It fails if req is not matchable at now.
func MatchRequest(req PaymentRequest, transactionID string, matchType MatchType, matchedBy string, now time.Time) (PaymentRequest, error) {
	if !req.IsMatchable(now) {
		return req, ErrRequestNotMatchable
	}
	req.Status = RequestMatched
	req.MatchedTransactionID = &transactionID
	req.MatchType = &matchType
	req.MatchedBy = &matchedBy
	req.MatchedAt = &now
	req.LastUpdatedAt = now
	req.LastUpdatedBy = matchedBy
	return req, nil
}

// ExpireRequest returns req moved to EXPIRED when it is pending and past its expiry.
// The boolean is false when no transition applies.
func ExpireRequest(req PaymentRequest, now time.Time) (PaymentRequest, bool) {
	if req.Status != RequestPending || req.ExpiresAt == nil || !req.ExpiresAt.Before(now) {
		return req, false
	}
	req.Status = RequestExpired
	req.LastUpdatedAt = now
	req.LastUpdatedBy = SystemActorID
	return req, true
}
