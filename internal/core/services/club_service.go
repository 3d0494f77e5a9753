package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/SscSPs/club_ledger_app/internal/core/matching"
	"github.com/SscSPs/club_ledger_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/club_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/club_ledger_app/internal/dto"
)

// clubService manages the club directory: clubs, members, bank accounts and events.
type clubService struct {
	BaseService
	repos    portsrepo.RepositoryProvider
	gateways gateways.GatewayResolver
}

// NewClubService creates a new ClubSvcFacade.
func NewClubService(repos portsrepo.RepositoryProvider, resolver gateways.GatewayResolver, opts ...Option) portssvc.ClubSvcFacade {
	return &clubService{
		BaseService: newBaseService(opts),
		repos:       repos,
		gateways:    resolver,
	}
}

var _ portssvc.ClubSvcFacade = (*clubService)(nil)

func (s *clubService) GetClub(ctx context.Context, clubID string) (*domain.Club, error) {
	return requireClub(ctx, s.repos, clubID)
}

func (s *clubService) GetEvent(ctx context.Context, clubID, eventID string) (*domain.Event, error) {
	return requireEvent(ctx, s.repos, clubID, eventID)
}

func (s *clubService) CreateClub(ctx context.Context, req dto.CreateClubRequest, actorID string) (*domain.Club, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("club name is required: %w", apperrors.ErrValidation)
	}
	club := domain.Club{
		ClubID:      uuid.NewString(),
		Name:        name,
		ClubType:    req.ClubType,
		AuditFields: newAudit(s.Now(), actorID),
	}
	if err := s.repos.ClubRepo.SaveClub(ctx, club); err != nil {
		s.LogError(ctx, err, "Failed to save club")
		return nil, fmt.Errorf("failed to save club: %w", err)
	}
	s.LogInfo(ctx, "Club created", slog.String("club_id", club.ClubID), slog.String("club_type", string(club.ClubType)))
	return &club, nil
}

func (s *clubService) AddMember(ctx context.Context, clubID string, req dto.AddMemberRequest, actorID string) (*domain.Member, error) {
	if matching.Normalize(req.RealName) == "" {
		return nil, fmt.Errorf("real name must contain letters or digits: %w", apperrors.ErrValidation)
	}
	if _, err := requireClub(ctx, s.repos, clubID); err != nil {
		return nil, err
	}
	member := domain.Member{
		MemberID:    uuid.NewString(),
		ClubID:      clubID,
		UserID:      req.UserID,
		RealName:    strings.TrimSpace(req.RealName),
		Nickname:    strings.TrimSpace(req.Nickname),
		Status:      domain.MemberActive,
		AuditFields: newAudit(s.Now(), actorID),
	}
	if err := s.repos.MemberRepo.SaveMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to save member: %w", err)
	}
	s.LogInfo(ctx, "Member added", slog.String("club_id", clubID), slog.String("member_id", member.MemberID))
	return &member, nil
}

func (s *clubService) RegisterAccount(ctx context.Context, clubID string, req dto.RegisterAccountRequest, actorID string) (*domain.ClubAccount, error) {
	if _, err := s.noAccountYet(ctx, clubID); err != nil {
		return nil, err
	}
	gateway, ok := s.gateways.Gateway(req.BankCode)
	if !ok {
		return nil, fmt.Errorf("unsupported bank code %q: %w", req.BankCode, apperrors.ErrValidation)
	}
	owner, err := gateway.InquireAccountOwner(ctx, req.AccountNumber)
	if err != nil {
		s.LogError(ctx, err, "Account owner inquiry failed", slog.String("club_id", clubID))
		return nil, err
	}
	if owner == nil {
		return nil, fmt.Errorf("account %s: %w", req.AccountNumber, apperrors.ErrNotFound)
	}
	return s.saveAccount(ctx, clubID, req.BankCode, owner.AccountNumber, owner.HolderName, actorID)
}

func (s *clubService) OpenAccount(ctx context.Context, clubID string, req dto.OpenAccountRequest, actorID string) (*domain.ClubAccount, error) {
	if _, err := s.noAccountYet(ctx, clubID); err != nil {
		return nil, err
	}
	gateway, ok := s.gateways.Gateway(req.BankCode)
	if !ok {
		return nil, fmt.Errorf("unsupported bank code %q: %w", req.BankCode, apperrors.ErrValidation)
	}
	opened, err := gateway.CreateAccount(ctx, gateways.CreateAccountRequest{ClubID: clubID, HolderName: req.HolderName})
	if err != nil {
		s.LogError(ctx, err, "Account opening failed", slog.String("club_id", clubID))
		return nil, err
	}
	return s.saveAccount(ctx, clubID, req.BankCode, opened.AccountNumber, opened.HolderName, actorID)
}

// noAccountYet checks the club exists and has no account; a club holds exactly one fund account.
func (s *clubService) noAccountYet(ctx context.Context, clubID string) (*domain.Club, error) {
	club, err := requireClub(ctx, s.repos, clubID)
	if err != nil {
		return nil, err
	}
	existing, err := s.repos.AccountRepo.FindAccountByClubID(ctx, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account of club %s: %w", clubID, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("club %s already has an account: %w", clubID, apperrors.ErrDuplicate)
	}
	return club, nil
}

func (s *clubService) saveAccount(ctx context.Context, clubID, bankCode, accountNumber, holder, actorID string) (*domain.ClubAccount, error) {
	account := domain.ClubAccount{
		AccountID:     uuid.NewString(),
		ClubID:        clubID,
		BankCode:      bankCode,
		AccountNumber: accountNumber,
		HolderName:    holder,
		AuditFields:   newAudit(s.Now(), actorID),
	}
	if err := s.repos.AccountRepo.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	s.LogInfo(ctx, "Club account linked", slog.String("club_id", clubID), slog.String("bank_code", bankCode))
	return &account, nil
}

func (s *clubService) CreateEvent(ctx context.Context, clubID string, req dto.CreateEventRequest, actorID string) (*domain.Event, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("event title is required: %w", apperrors.ErrValidation)
	}
	if req.EntryFee.IsNegative() {
		return nil, fmt.Errorf("entry fee must not be negative: %w", apperrors.ErrValidation)
	}
	date, err := s.ParseDate(req.EventDate)
	if err != nil {
		return nil, fmt.Errorf("invalid event date %q: %w", req.EventDate, apperrors.ErrValidation)
	}
	club, err := requireClub(ctx, s.repos, clubID)
	if err != nil {
		return nil, err
	}
	if !club.IsFairSettlement() && req.EntryFee.IsPositive() {
		return nil, fmt.Errorf("entry fees require a fair-settlement club: %w", apperrors.ErrValidation)
	}

	event := domain.Event{
		EventID:        uuid.NewString(),
		ClubID:         clubID,
		Title:          strings.TrimSpace(req.Title),
		EventDate:      date,
		EntryFee:       req.EntryFee,
		Status:         domain.EventOpen,
		ParticipantIDs: []string{},
		AuditFields:    newAudit(s.Now(), actorID),
	}
	if err := s.repos.EventRepo.SaveEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to save event: %w", err)
	}
	s.LogInfo(ctx, "Event created", slog.String("club_id", clubID), slog.String("event_id", event.EventID))
	return &event, nil
}

func (s *clubService) AddParticipant(ctx context.Context, clubID, eventID string, req dto.AddParticipantRequest, actorID string) (*domain.Event, error) {
	event, err := requireEvent(ctx, s.repos, clubID, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status == domain.EventClosed {
		return nil, fmt.Errorf("event %s: %w", eventID, apperrors.ErrConflict)
	}
	member, err := s.repos.MemberRepo.FindMemberByID(ctx, req.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to load member %s: %w", req.MemberID, err)
	}
	if member == nil || member.ClubID != clubID {
		return nil, fmt.Errorf("member %s: %w", req.MemberID, apperrors.ErrNotFound)
	}
	for _, id := range event.ParticipantIDs {
		if id == member.MemberID {
			return event, nil
		}
	}
	if err := s.repos.EventRepo.AddParticipant(ctx, eventID, member.MemberID); err != nil {
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}
	event.ParticipantIDs = append(event.ParticipantIDs, member.MemberID)
	s.LogDebug(ctx, "Participant added", slog.String("event_id", eventID), slog.String("member_id", member.MemberID), slog.String("actor_id", actorID))
	return event, nil
}
