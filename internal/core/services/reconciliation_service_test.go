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

type ReconciliationServiceTestSuite struct {
	suite.Suite
	repos repoMocks
	txm   *fakeTxManager
	svc   portssvc.ReconciliationSvcFacade
	ctx   context.Context
}

func (s *ReconciliationServiceTestSuite) SetupTest() {
	s.repos = newRepoMocks()
	s.txm = &fakeTxManager{repos: s.repos.provider()}
	s.svc = services.NewReconciliationService(s.repos.provider(), s.txm, services.WithClock(fixedClock))
	s.ctx = context.Background()
}

func (s *ReconciliationServiceTestSuite) TearDownTest() {
	s.repos.assertExpectations(s.T())
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}

func pendingDues(id string) *domain.PaymentRequest {
	return &domain.PaymentRequest{
		RequestID:      id,
		ClubID:         testClubID,
		MemberID:       "m1",
		RequestType:    domain.RequestDeposit,
		ExpectedAmount: decimal.NewFromInt(30000),
		ExpectedDate:   fixedNow,
		Status:         domain.RequestPending,
	}
}

func inbound(id string) *domain.BankTransaction {
	return &domain.BankTransaction{
		TransactionID: id,
		ClubID:        testClubID,
		OccurredAt:    fixedNow,
		Amount:        decimal.NewFromInt(30000),
		InoutType:     domain.Deposit,
		PrintContent:  "KIM dues",
	}
}

func (s *ReconciliationServiceTestSuite) expectManualMatchLoads(req *domain.PaymentRequest, tx *domain.BankTransaction) {
	s.repos.request.On("FindRequestByID", mock.Anything, req.RequestID).Return(req, nil).Once()
	s.repos.club.On("FindClubByID", mock.Anything, testClubID).Return(testClub(domain.OperatingFee), nil).Once()
	s.repos.account.On("LockAccountForClub", mock.Anything, testClubID).Return(testAccount(), nil).Once()
	s.repos.bankTx.On("FindTransactionByID", mock.Anything, tx.TransactionID).Return(tx, nil).Once()
}

func (s *ReconciliationServiceTestSuite) TestManualMatch_BindsWithoutNameRule() {
	req := pendingDues("r1")
	tx := inbound("t1")
	s.expectManualMatchLoads(req, tx)
	s.repos.request.On("FindRequestsByTransactionIDs", mock.Anything, []string{"t1"}).Return(map[string]domain.PaymentRequest{}, nil).Once()
	s.repos.request.On("UpdateRequestStatus", mock.Anything, mock.MatchedBy(func(r domain.PaymentRequest) bool {
		return r.Status == domain.RequestMatched && *r.MatchType == domain.MatchManual &&
			*r.MatchedBy == "officer-1" && *r.MatchedTransactionID == "t1"
	})).Return(nil).Once()
	s.repos.bankTx.On("MarkMatched", mock.Anything, "t1").Return(nil).Once()

	matched, err := s.svc.ManualMatch(s.ctx, "r1", "t1", "officer-1")

	s.Require().NoError(err)
	s.Equal(domain.RequestMatched, matched.Status)
}

func (s *ReconciliationServiceTestSuite) TestManualMatch_AlreadyMatchedTransaction() {
	tx := inbound("t1")
	tx.Matched = true
	s.expectManualMatchLoads(pendingDues("r1"), tx)

	_, err := s.svc.ManualMatch(s.ctx, "r1", "t1", "officer-1")

	s.ErrorIs(err, apperrors.ErrConflict)
	s.repos.request.AssertNotCalled(s.T(), "UpdateRequestStatus", mock.Anything, mock.Anything)
}

func (s *ReconciliationServiceTestSuite) TestManualMatch_DirectionMismatch() {
	tx := inbound("t1")
	tx.InoutType = domain.Withdraw
	s.expectManualMatchLoads(pendingDues("r1"), tx)
	s.repos.request.On("FindRequestsByTransactionIDs", mock.Anything, []string{"t1"}).Return(map[string]domain.PaymentRequest{}, nil).Once()

	_, err := s.svc.ManualMatch(s.ctx, "r1", "t1", "officer-1")

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ReconciliationServiceTestSuite) TestManualMatch_ExpiredRequest() {
	req := pendingDues("r1")
	past := fixedNow.Add(-time.Minute)
	req.ExpiresAt = &past
	s.expectManualMatchLoads(req, inbound("t1"))
	s.repos.request.On("FindRequestsByTransactionIDs", mock.Anything, []string{"t1"}).Return(map[string]domain.PaymentRequest{}, nil).Once()

	_, err := s.svc.ManualMatch(s.ctx, "r1", "t1", "officer-1")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.ErrorIs(err, domain.ErrRequestNotMatchable)
}

func (s *ReconciliationServiceTestSuite) TestManualMatch_TransactionOfOtherClub() {
	tx := inbound("t1")
	tx.ClubID = "club-2"
	s.expectManualMatchLoads(pendingDues("r1"), tx)

	_, err := s.svc.ManualMatch(s.ctx, "r1", "t1", "officer-1")

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *ReconciliationServiceTestSuite) TestExpireOldRequests_OnlyPastPending() {
	past := fixedNow.Add(-time.Hour)
	stale := *pendingDues("r-stale")
	stale.ExpiresAt = &past
	raced := *pendingDues("r-raced")
	raced.ExpiresAt = &past

	s.repos.request.On("ListExpiredPendingRequests", mock.Anything, testClubID, mock.Anything).
		Return([]domain.PaymentRequest{stale, raced}, nil).Once()
	s.repos.request.On("UpdateRequestStatus", mock.Anything, mock.MatchedBy(func(r domain.PaymentRequest) bool {
		return r.RequestID == "r-stale" && r.Status == domain.RequestExpired
	})).Return(nil).Once()
	s.repos.request.On("UpdateRequestStatus", mock.Anything, mock.MatchedBy(func(r domain.PaymentRequest) bool {
		return r.RequestID == "r-raced"
	})).Return(apperrors.ErrConflict).Once()

	n, err := s.svc.ExpireOldRequests(s.ctx, testClubID)

	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *ReconciliationServiceTestSuite) TestExpireAll_SumsClubs() {
	past := fixedNow.Add(-time.Hour)
	stale := *pendingDues("r1")
	stale.ExpiresAt = &past
	s.repos.club.On("ListClubIDsWithAccount", mock.Anything).Return([]string{"a", "b"}, nil).Once()
	s.repos.request.On("ListExpiredPendingRequests", mock.Anything, "a", mock.Anything).Return([]domain.PaymentRequest{stale}, nil).Once()
	s.repos.request.On("ListExpiredPendingRequests", mock.Anything, "b", mock.Anything).Return([]domain.PaymentRequest{}, nil).Once()
	s.repos.request.On("UpdateRequestStatus", mock.Anything, mock.Anything).Return(nil).Once()

	n, err := s.svc.ExpireAll(s.ctx)

	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *ReconciliationServiceTestSuite) TestListTransactions_AnnotatesMatches() {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	s.repos.club.On("FindClubByID", mock.Anything, testClubID).Return(testClub(domain.OperatingFee), nil).Once()
	s.repos.bankTx.On("ListTransactionsByRange", mock.Anything, testClubID, from, to.AddDate(0, 0, 1), 50, (*string)(nil)).
		Return([]domain.BankTransaction{*inbound("t1"), *inbound("t2")}, "next-page", nil).Once()
	s.repos.request.On("FindRequestsByTransactionIDs", mock.Anything, []string{"t1", "t2"}).
		Return(map[string]domain.PaymentRequest{"t2": *pendingDues("r9")}, nil).Once()

	txs, next, err := s.svc.ListTransactions(s.ctx, testClubID, dto.ListTransactionsParams{From: from, To: to})

	s.Require().NoError(err)
	s.Require().Len(txs, 2)
	s.Nil(txs[0].MatchedRequest)
	s.Require().NotNil(txs[1].MatchedRequest)
	s.Equal("r9", txs[1].MatchedRequest.RequestID)
	s.Require().NotNil(next)
	s.Equal("next-page", *next)
}

func (s *ReconciliationServiceTestSuite) TestListTransactions_InvalidRange() {
	_, _, err := s.svc.ListTransactions(s.ctx, testClubID, dto.ListTransactionsParams{
		From: fixedNow,
		To:   fixedNow.AddDate(0, 0, -1),
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}
