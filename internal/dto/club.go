package dto

import (
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateClubRequest defines the data needed to create a club.
type CreateClubRequest struct {
	Name     string          `json:"name" binding:"required"`
	ClubType domain.ClubType `json:"clubType" binding:"required,oneof=FAIR_SETTLEMENT OPERATING_FEE"`
}

// AddMemberRequest adds a member to a club.
type AddMemberRequest struct {
	UserID   *string `json:"userID"`
	RealName string  `json:"realName" binding:"required"`
	Nickname string  `json:"nickname"`
}

// RegisterAccountRequest links an existing bank account to a club.
// The holder is verified with the bank before the account is stored.
type RegisterAccountRequest struct {
	BankCode      string `json:"bankCode" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
}

// OpenAccountRequest asks the bank to open a new account for the club.
type OpenAccountRequest struct {
	BankCode   string `json:"bankCode" binding:"required"`
	HolderName string `json:"holderName" binding:"required"`
}

// CreateEventRequest defines a club event that may collect an entry fee.
type CreateEventRequest struct {
	Title     string          `json:"title" binding:"required"`
	EventDate string          `json:"eventDate" binding:"required,datetime=2006-01-02"`
	EntryFee  decimal.Decimal `json:"entryFee" binding:"gte=0"`
}

// AddParticipantRequest registers a member for an event.
type AddParticipantRequest struct {
	MemberID string `json:"memberID" binding:"required"`
}
