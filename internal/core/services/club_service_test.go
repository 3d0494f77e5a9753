package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/SscSPs/club_ledger_app/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/club_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/club_ledger_app/internal/core/services"
	"github.com/SscSPs/club_ledger_app/internal/dto"
)

type ClubServiceTestSuite struct {
	suite.Suite
	repos   repoMocks
	gateway *MockBankGateway
	svc     portssvc.ClubSvcFacade
	reqSvc  portssvc.PaymentRequestSvc
	ctx     context.Context
}

func (s *ClubServiceTestSuite) SetupTest() {
	s.repos = newRepoMocks()
	s.gateway = new(MockBankGateway)
	s.svc = services.NewClubService(s.repos.provider(), staticResolver{testBankCode: s.gateway}, services.WithClock(fixedClock))
	s.reqSvc = services.NewPaymentRequestService(s.repos.provider(), services.WithClock(fixedClock))
	s.ctx = context.Background()
}

func (s *ClubServiceTestSuite) TearDownTest() {
	s.repos.assertExpectations(s.T())
	s.gateway.AssertExpectations(s.T())
}

func TestClubServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClubServiceTestSuite))
}

func (s *ClubServiceTestSuite) TestRegisterAccount_VerifiesHolder() {
	s.repos.club.On("FindClubByID", mock.Anything, testClubID).Return(testClub(domain.OperatingFee), nil).Once()
	s.repos.account.On("FindAccountByClubID", mock.Anything, testClubID).Return(nil, nil).Once()
	s.gateway.On("InquireAccountOwner", mock.Anything, testAccountNo).
		Return(&gateways.OwnerResult{AccountNumber: testAccountNo, HolderName: "Sunday Runners"}, nil).Once()
	s.repos.account.On("SaveAccount", mock.Anything, mock.MatchedBy(func(a domain.ClubAccount) bool {
		return a.HolderName == "Sunday Runners" && a.BankCode == testBankCode && a.CreatedBy == "officer-1"
	})).Return(nil).Once()

	acc, err := s.svc.RegisterAccount(s.ctx, testClubID, dto.RegisterAccountRequest{BankCode: testBankCode, AccountNumber: testAccountNo}, "officer-1")

	s.Require().NoError(err)
	s.Equal(testAccountNo, acc.AccountNumber)
}

func (s *ClubServiceTestSuite) TestRegisterAccount_SecondAccountIsDuplicate() {
	s.repos.club.On("FindClubByID", mock.Anything, testClubID).Return(testClub(domain.OperatingFee), nil).Once()
	s.repos.account.On("FindAccountByClubID", mock.Anything, testClubID).Return(testAccount(), nil).Once()

	_, err := s.svc.RegisterAccount(s.ctx, testClubID, dto.RegisterAccountRequest{BankCode: testBankCode, AccountNumber: "x"}, "officer-1")

	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *ClubServiceTestSuite) TestOpenAccount_UnknownBank() {
	s.repos.club.On("FindClubByID", mock.Anything, testClubID).Return(testClub(domain.OperatingFee), nil).Once()
	s.repos.account.On("FindAccountByClubID", mock.Anything, testClubID).Return(nil, nil).Once()

	_, err := s.svc.OpenAccount(s.ctx, testClubID, dto.OpenAccountRequest{BankCode: "999", HolderName: "Runners"}, "officer-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ClubServiceTestSuite) TestAddMember_RequiresUsableName() {
	_, err := s.svc.AddMember(s.ctx, testClubID, dto.AddMemberRequest{RealName: " -- "}, "officer-1")
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ClubServiceTestSuite) TestCreateEvent_FeeNeedsFairSettlementClub() {
	s.repos.club.On("FindClubByID", mock.Anything, testClubID).Return(testClub(domain.OperatingFee), nil).Once()

	_, err := s.svc.CreateEvent(s.ctx, testClubID, dto.CreateEventRequest{
		Title:     "Trail run",
		EventDate: "2026-04-05",
		EntryFee:  decimal.NewFromInt(10000),
	}, "officer-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ClubServiceTestSuite) TestAddParticipant_IsIdempotent() {
	s.repos.event.On("FindEventByID", mock.Anything, testEventID).Return(openEvent(10000, "m1"), nil).Once()
	s.repos.member.On("FindMemberByID", mock.Anything, "m1").Return(&domain.Member{MemberID: "m1", ClubID: testClubID}, nil).Once()

	ev, err := s.svc.AddParticipant(s.ctx, testClubID, testEventID, dto.AddParticipantRequest{MemberID: "m1"}, "officer-1")

	s.Require().NoError(err)
	s.Equal([]string{"m1"}, ev.ParticipantIDs)
	s.repos.event.AssertNotCalled(s.T(), "AddParticipant", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ClubServiceTestSuite) TestCreateRequest_DenormalizesDisplayName() {
	s.repos.club.On("FindClubByID", mock.Anything, testClubID).Return(testClub(domain.OperatingFee), nil).Once()
	s.repos.member.On("FindMemberByID", mock.Anything, "m1").
		Return(&domain.Member{MemberID: "m1", ClubID: testClubID, RealName: "Kim Minsu", Nickname: "runner", Status: domain.MemberActive}, nil).Once()
	s.repos.request.On("SaveRequest", mock.Anything, mock.MatchedBy(func(r domain.PaymentRequest) bool {
		return r.MemberName == "runner" && r.Status == domain.RequestPending && r.ExpectedDate.Day() == 25
	})).Return(nil).Once()

	req, err := s.reqSvc.CreateRequest(s.ctx, testClubID, dto.CreatePaymentRequestRequest{
		MemberID:       "m1",
		RequestType:    domain.RequestDeposit,
		ExpectedAmount: decimal.NewFromInt(30000),
		ExpectedDate:   "2026-03-25",
	}, "officer-1")

	s.Require().NoError(err)
	s.Equal("officer-1", req.CreatedBy)
}

func (s *ClubServiceTestSuite) TestCreateRequest_InactiveMember() {
	s.repos.club.On("FindClubByID", mock.Anything, testClubID).Return(testClub(domain.OperatingFee), nil).Once()
	s.repos.member.On("FindMemberByID", mock.Anything, "m2").
		Return(&domain.Member{MemberID: "m2", ClubID: testClubID, RealName: "Lee", Status: domain.MemberInactive}, nil).Once()

	_, err := s.reqSvc.CreateRequest(s.ctx, testClubID, dto.CreatePaymentRequestRequest{
		MemberID:       "m2",
		RequestType:    domain.RequestDeposit,
		ExpectedAmount: decimal.NewFromInt(30000),
		ExpectedDate:   "2026-03-25",
	}, "officer-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}
