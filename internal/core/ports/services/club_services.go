package services

import (
	"context"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/SscSPs/club_ledger_app/internal/dto"
)

// ClubReaderSvc defines read operations for the club directory
type ClubReaderSvc interface {
	GetClub(ctx context.Context, clubID string) (*domain.Club, error)
	GetEvent(ctx context.Context, clubID, eventID string) (*domain.Event, error)
}

// ClubWriterSvc defines write operations for clubs, members, accounts and events
type ClubWriterSvc interface {
	CreateClub(ctx context.Context, req dto.CreateClubRequest, actorID string) (*domain.Club, error)
	AddMember(ctx context.Context, clubID string, req dto.AddMemberRequest, actorID string) (*domain.Member, error)

	// RegisterAccount links an existing account after confirming its holder with the bank.
	RegisterAccount(ctx context.Context, clubID string, req dto.RegisterAccountRequest, actorID string) (*domain.ClubAccount, error)

	// OpenAccount asks the bank to open a new account and links it.
	OpenAccount(ctx context.Context, clubID string, req dto.OpenAccountRequest, actorID string) (*domain.ClubAccount, error)

	CreateEvent(ctx context.Context, clubID string, req dto.CreateEventRequest, actorID string) (*domain.Event, error)
	AddParticipant(ctx context.Context, clubID, eventID string, req dto.AddParticipantRequest, actorID string) (*domain.Event, error)
}

// ClubSvcFacade combines all club directory service interfaces
type ClubSvcFacade interface {
	ClubReaderSvc
	ClubWriterSvc
}
