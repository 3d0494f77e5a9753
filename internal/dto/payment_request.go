package dto

import (
	"time"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequestRequest is an officer raising an expected payment (e.g. monthly dues).
type CreatePaymentRequestRequest struct {
	MemberID       string             `json:"memberID" binding:"required"`
	RequestType    domain.RequestType `json:"requestType" binding:"required,oneof=DEPOSIT SETTLEMENT"`
	ExpectedAmount decimal.Decimal    `json:"expectedAmount" binding:"required,gt=0"`
	ExpectedDate   string             `json:"expectedDate" binding:"required,datetime=2006-01-02"`
	DateRangeDays  *int               `json:"dateRangeDays" binding:"omitempty,gte=0,lte=90"`
	EventID        *string            `json:"eventID"`
	ExpiresAt      *time.Time         `json:"expiresAt"`
}

// ManualMatchRequest binds a request to a transaction chosen by an officer.
type ManualMatchRequest struct {
	TransactionID string `json:"transactionID" binding:"required"`
}

// DisburseRefundRequest names where a settlement refund is sent.
type DisburseRefundRequest struct {
	BankCode      string `json:"bankCode" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
}

// PaymentRequestResponse defines the data returned for a payment request.
type PaymentRequestResponse struct {
	RequestID            string               `json:"requestID"`
	MemberID             string               `json:"memberID"`
	MemberName           string               `json:"memberName"`
	RequestType          domain.RequestType   `json:"requestType"`
	ExpectedAmount       decimal.Decimal      `json:"expectedAmount"`
	ExpectedDate         time.Time            `json:"expectedDate"`
	EventID              *string              `json:"eventID,omitempty"`
	ExpiresAt            *time.Time           `json:"expiresAt,omitempty"`
	Status               domain.RequestStatus `json:"status"`
	MatchedTransactionID *string              `json:"matchedTransactionID,omitempty"`
	MatchType            *domain.MatchType    `json:"matchType,omitempty"`
	MatchedBy            *string              `json:"matchedBy,omitempty"`
}

// ToPaymentRequestResponse converts a domain.PaymentRequest to its response DTO.
func ToPaymentRequestResponse(r domain.PaymentRequest) PaymentRequestResponse {
	return PaymentRequestResponse{
		RequestID:            r.RequestID,
		MemberID:             r.MemberID,
		MemberName:           r.MemberName,
		RequestType:          r.RequestType,
		ExpectedAmount:       r.ExpectedAmount,
		ExpectedDate:         r.ExpectedDate,
		EventID:              r.EventID,
		ExpiresAt:            r.ExpiresAt,
		Status:               r.Status,
		MatchedTransactionID: r.MatchedTransactionID,
		MatchType:            r.MatchType,
		MatchedBy:            r.MatchedBy,
	}
}

// ToPaymentRequestResponses converts a slice of requests.
func ToPaymentRequestResponses(reqs []domain.PaymentRequest) []PaymentRequestResponse {
	responses := make([]PaymentRequestResponse, len(reqs))
	for i, r := range reqs {
		responses[i] = ToPaymentRequestResponse(r)
	}
	return responses
}

// SettlementResponse is returned by the settle endpoint.
type SettlementResponse struct {
	EventID         string                   `json:"eventID"`
	TotalIncome     decimal.Decimal          `json:"totalIncome"`
	TotalExpense    decimal.Decimal          `json:"totalExpense"`
	Balance         decimal.Decimal          `json:"balance"`
	PayerCount      int                      `json:"payerCount"`
	RefundPerPerson decimal.Decimal          `json:"refundPerPerson"`
	Remainder       decimal.Decimal          `json:"remainder"`
	Refunds         []PaymentRequestResponse `json:"refunds"`
}

// ToSettlementResponse converts a domain.Settlement to its response DTO.
func ToSettlementResponse(s domain.Settlement) SettlementResponse {
	return SettlementResponse{
		EventID:         s.EventID,
		TotalIncome:     s.TotalIncome,
		TotalExpense:    s.TotalExpense,
		Balance:         s.Balance,
		PayerCount:      s.PayerCount,
		RefundPerPerson: s.RefundPerPerson,
		Remainder:       s.Remainder,
		Refunds:         ToPaymentRequestResponses(s.Refunds),
	}
}
