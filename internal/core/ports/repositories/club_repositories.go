package repositories

import (
	"context"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
)

// Lookups return (nil, nil) when the record does not exist; callers decide whether that is fatal.

// ClubReader defines read operations for club data
type ClubReader interface {
	// FindClubByID retrieves a club by its ID.
	FindClubByID(ctx context.Context, clubID string) (*domain.Club, error)

	// ListClubIDsWithAccount lists every club that has a bank account registered.
	ListClubIDsWithAccount(ctx context.Context) ([]string, error)
}

// ClubWriter defines write operations for club data
type ClubWriter interface {
	SaveClub(ctx context.Context, club domain.Club) error
}

// ClubRepositoryFacade combines all club-related repository interfaces
type ClubRepositoryFacade interface {
	ClubReader
	ClubWriter
}

// MemberReader defines read operations for club members
type MemberReader interface {
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// ListMembersByClub returns every member of the club, active or not.
	ListMembersByClub(ctx context.Context, clubID string) ([]domain.Member, error)
}

// MemberWriter defines write operations for club members
type MemberWriter interface {
	SaveMember(ctx context.Context, member domain.Member) error
}

// MemberRepositoryFacade combines all member-related repository interfaces
type MemberRepositoryFacade interface {
	MemberReader
	MemberWriter
}
