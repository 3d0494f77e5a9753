package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/club_ledger_app/internal/apperrors"
	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/club_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/club_ledger_app/internal/core/services"
	"github.com/SscSPs/club_ledger_app/internal/dto"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	repos repoMocks
	txm   *fakeTxManager
	svc   portssvc.LedgerSvcFacade
	ctx   context.Context
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.repos = newRepoMocks()
	s.txm = &fakeTxManager{repos: s.repos.provider()}
	s.svc = services.NewLedgerService(s.repos.provider(), s.txm, services.WithClock(fixedClock))
	s.ctx = context.Background()
}

func (s *LedgerServiceTestSuite) TearDownTest() {
	s.repos.assertExpectations(s.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) TestRecordManualEntry_AppendsToRunningBalance() {
	eventID := testEventID
	s.repos.club.On("FindClubByID", mock.Anything, testClubID).Return(testClub(domain.FairSettlement), nil).Once()
	s.repos.event.On("FindEventByID", mock.Anything, testEventID).Return(openEvent(10000), nil).Once()
	s.repos.account.On("LockAccountForClub", mock.Anything, testClubID).Return(testAccount(), nil).Once()
	s.repos.ledger.On("FindLatestEntry", mock.Anything, testClubID).
		Return(&domain.LedgerEntry{BalanceAfter: decimal.NewFromInt(20000)}, nil).Once()
	s.repos.ledger.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.EntryType == domain.EntryExpense &&
			e.BalanceAfter.Equal(decimal.NewFromInt(15000)) &&
			e.TransactionID == nil &&
			e.EditorID != nil && *e.EditorID == "officer-1" &&
			e.AccountID == "acc-1"
	})).Return(nil).Once()

	entry, err := s.svc.RecordManualEntry(s.ctx, testClubID, dto.CreateLedgerEntryRequest{
		EntryType: domain.EntryExpense,
		Amount:    decimal.NewFromInt(-5000),
		Memo:      "water and snacks",
		EventID:   &eventID,
	}, "officer-1")

	s.Require().NoError(err)
	s.True(entry.BalanceAfter.Equal(decimal.NewFromInt(15000)))
}

func (s *LedgerServiceTestSuite) TestRecordManualEntry_RejectsWrongSign() {
	_, err := s.svc.RecordManualEntry(s.ctx, testClubID, dto.CreateLedgerEntryRequest{
		EntryType: domain.EntryExpense,
		Amount:    decimal.NewFromInt(5000),
		Memo:      "positive expense",
	}, "officer-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal(0, s.txm.calls)
}

func (s *LedgerServiceTestSuite) TestListEntries_UsesInclusiveDays() {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	s.repos.club.On("FindClubByID", mock.Anything, testClubID).Return(testClub(domain.OperatingFee), nil).Once()
	s.repos.ledger.On("ListEntriesByRange", mock.Anything, testClubID, from, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)).
		Return([]domain.LedgerEntry{}, nil).Once()

	entries, err := s.svc.ListEntries(s.ctx, testClubID, from, to)

	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *LedgerServiceTestSuite) TestStatement_ReportsBrokenChain() {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s.repos.club.On("FindClubByID", mock.Anything, testClubID).Return(testClub(domain.OperatingFee), nil).Once()
	s.repos.ledger.On("ListEntriesByRange", mock.Anything, testClubID, mock.Anything, mock.Anything).Return([]domain.LedgerEntry{
		{EntryID: "e1", EntryType: domain.EntryDeposit, Amount: decimal.NewFromInt(1000), BalanceAfter: decimal.NewFromInt(1000)},
		{EntryID: "e2", EntryType: domain.EntryDeposit, Amount: decimal.NewFromInt(1000), BalanceAfter: decimal.NewFromInt(2500)},
	}, nil).Once()

	st, err := s.svc.Statement(s.ctx, testClubID, from, from)

	s.Require().NoError(err)
	s.Require().NotNil(st.BrokenEntryID)
	s.Equal("e2", *st.BrokenEntryID)
}

func (s *LedgerServiceTestSuite) TestListEventEntries_UnknownEvent() {
	s.repos.event.On("FindEventByID", mock.Anything, "missing").Return(nil, nil).Once()

	_, err := s.svc.ListEventEntries(s.ctx, testClubID, "missing")

	s.ErrorIs(err, apperrors.ErrNotFound)
}
