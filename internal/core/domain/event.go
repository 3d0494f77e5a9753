package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrEventClosed = errors.New("event is closed")

// EventStatus is the settlement state of an event.
type EventStatus string

const (
	EventOpen   EventStatus = "OPEN"
	EventClosed EventStatus = "CLOSED"
)

// Event is a club schedule that may collect an entry fee from its participants.
type Event struct {
	EventID        string          `json:"eventID"`
	ClubID         string          `json:"clubID"`
	Title          string          `json:"title"`
	EventDate      time.Time       `json:"eventDate"`
	EntryFee       decimal.Decimal `json:"entryFee"`
	Status         EventStatus     `json:"status"`
	ParticipantIDs []string        `json:"participantIDs"` // Member IDs
	AuditFields
}

// CloseEvent returns ev in its terminal CLOSED state.
func CloseEvent(ev Event, closedBy string, now time.Time) (Event, error) {
	if ev.Status == EventClosed {
		return ev, ErrEventClosed
	}
	ev.Status = EventClosed
	ev.LastUpdatedAt = now
	ev.LastUpdatedBy = closedBy
	return ev, nil
}

// Settlement summarises one settleAndRefund run.
type Settlement struct {
	EventID         string           `json:"eventID"`
	TotalIncome     decimal.Decimal  `json:"totalIncome"`
	TotalExpense    decimal.Decimal  `json:"totalExpense"`
	Balance         decimal.Decimal  `json:"balance"`
	PayerCount      int              `json:"payerCount"`
	RefundPerPerson decimal.Decimal  `json:"refundPerPerson"`
	Remainder       decimal.Decimal  `json:"remainder"`
	Refunds         []PaymentRequest `json:"refunds"`
}
