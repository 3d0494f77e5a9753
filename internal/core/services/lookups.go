package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
)

// Repositories report absence as (nil, nil); these helpers turn it into apperrors.ErrNotFound.

func requireClub(ctx context.Context, repos portsrepo.RepositoryProvider, clubID string) (*domain.Club, error) {
	club, err := repos.ClubRepo.FindClubByID(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to load club %s: %w", clubID, err)
	}
	if club == nil {
		return nil, fmt.Errorf("club %s: %w", clubID, apperrors.ErrNotFound)
	}
	return club, nil
}

func requireAccount(ctx context.Context, repos portsrepo.RepositoryProvider, clubID string) (*domain.ClubAccount, error) {
	account, err := repos.AccountRepo.FindAccountByClubID(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account of club %s: %w", clubID, err)
	}
	if account == nil {
		return nil, fmt.Errorf("account not found for club %s: %w", clubID, apperrors.ErrNotFound)
	}
	return account, nil
}

func lockAccount(ctx context.Context, repos portsrepo.RepositoryProvider, clubID string) (*domain.ClubAccount, error) {
	account, err := repos.AccountRepo.LockAccountForClub(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock account of club %s: %w", clubID, err)
	}
	if account == nil {
		return nil, fmt.Errorf("account not found for club %s: %w", clubID, apperrors.ErrNotFound)
	}
	return account, nil
}

func requireEvent(ctx context.Context, repos portsrepo.RepositoryProvider, clubID, eventID string) (*domain.Event, error) {
	event, err := repos.EventRepo.FindEventByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to load event %s: %w", eventID, err)
	}
	if event == nil || event.ClubID != clubID {
		return nil, fmt.Errorf("event %s: %w", eventID, apperrors.ErrNotFound)
	}
	return event, nil
}

func requireRequest(ctx context.Context, repos portsrepo.RepositoryProvider, requestID string) (*domain.PaymentRequest, error) {
	req, err := repos.PaymentRequestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment request %s: %w", requestID, err)
	}
	if req == nil {
		return nil, fmt.Errorf("payment request %s: %w", requestID, apperrors.ErrNotFound)
	}
	return req, nil
}
