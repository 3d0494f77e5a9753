package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/club_ledger_app/internal/core/domain"
	"github.com/SscSPs/club_ledger_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
)

// --- Mock ClubRepository ---
type MockClubRepository struct {
	mock.Mock
}

var _ portsrepo.ClubRepositoryFacade = (*MockClubRepository)(nil)

func (m *MockClubRepository) FindClubByID(ctx context.Context, clubID string) (*domain.Club, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Club), args.Error(1)
}

func (m *MockClubRepository) ListClubIDsWithAccount(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockClubRepository) SaveClub(ctx context.Context, club domain.Club) error {
	return m.Called(ctx, club).Error(0)
}

// --- Mock MemberRepository ---
type MockMemberRepository struct {
	mock.Mock
}

var _ portsrepo.MemberRepositoryFacade = (*MockMemberRepository)(nil)

func (m *MockMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) ListMembersByClub(ctx context.Context, clubID string) ([]domain.Member, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

func (m *MockMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	return m.Called(ctx, member).Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByClubID(ctx context.Context, clubID string) (*domain.ClubAccount, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClubAccount), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.ClubAccount) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) LockAccountForClub(ctx context.Context, clubID string) (*domain.ClubAccount, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClubAccount), args.Error(1)
}

// --- Mock EventRepository ---
type MockEventRepository struct {
	mock.Mock
}

var _ portsrepo.EventRepositoryFacade = (*MockEventRepository)(nil)

func (m *MockEventRepository) FindEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *MockEventRepository) SaveEvent(ctx context.Context, event domain.Event) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventRepository) AddParticipant(ctx context.Context, eventID, memberID string) error {
	return m.Called(ctx, eventID, memberID).Error(0)
}

func (m *MockEventRepository) UpdateEventStatus(ctx context.Context, event domain.Event) error {
	return m.Called(ctx, event).Error(0)
}

// --- Mock BankTransactionRepository ---
type MockBankTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.BankTransactionRepositoryFacade = (*MockBankTransactionRepository)(nil)

func (m *MockBankTransactionRepository) FindByUniqueKey(ctx context.Context, clubID, uniqueKey string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, clubID, uniqueKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) ListTransactionsByRange(ctx context.Context, clubID string, from, to time.Time, limit int, nextToken *string) ([]domain.BankTransaction, *string, error) {
	args := m.Called(ctx, clubID, from, to, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.BankTransaction), returnedNextToken, args.Error(2)
}

func (m *MockBankTransactionRepository) ListUnmatchedTransactions(ctx context.Context, clubID string) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransaction), args.Error(1)
}

func (m *MockBankTransactionRepository) SaveTransaction(ctx context.Context, tx domain.BankTransaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockBankTransactionRepository) MarkMatched(ctx context.Context, transactionID string) error {
	return m.Called(ctx, transactionID).Error(0)
}

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) FindLatestEntry(ctx context.Context, clubID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindEntryByTransactionID(ctx context.Context, transactionID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByRange(ctx context.Context, clubID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, clubID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByEvent(ctx context.Context, clubID, eventID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, clubID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockLedgerRepository) AttachEvent(ctx context.Context, entryID, eventID string) error {
	return m.Called(ctx, entryID, eventID).Error(0)
}

// --- Mock PaymentRequestRepository ---
type MockPaymentRequestRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRequestRepositoryFacade = (*MockPaymentRequestRepository)(nil)

func (m *MockPaymentRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.PaymentRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentRequest), args.Error(1)
}

func (m *MockPaymentRequestRepository) ListMatchableRequests(ctx context.Context, clubID string, now time.Time) ([]domain.PaymentRequest, error) {
	args := m.Called(ctx, clubID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentRequest), args.Error(1)
}

func (m *MockPaymentRequestRepository) ListExpiredPendingRequests(ctx context.Context, clubID string, now time.Time) ([]domain.PaymentRequest, error) {
	args := m.Called(ctx, clubID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentRequest), args.Error(1)
}

func (m *MockPaymentRequestRepository) ListRequestsByEvent(ctx context.Context, clubID, eventID string) ([]domain.PaymentRequest, error) {
	args := m.Called(ctx, clubID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentRequest), args.Error(1)
}

func (m *MockPaymentRequestRepository) FindRequestsByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string]domain.PaymentRequest, error) {
	args := m.Called(ctx, transactionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.PaymentRequest), args.Error(1)
}

func (m *MockPaymentRequestRepository) SaveRequest(ctx context.Context, req domain.PaymentRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockPaymentRequestRepository) UpdateRequestStatus(ctx context.Context, req domain.PaymentRequest) error {
	return m.Called(ctx, req).Error(0)
}

// --- Mock BankGateway ---
type MockBankGateway struct {
	mock.Mock
}

var _ gateways.BankGateway = (*MockBankGateway)(nil)

func (m *MockBankGateway) GetTransactions(ctx context.Context, accountNumber string, from, to time.Time) ([]domain.RawTransaction, error) {
	args := m.Called(ctx, accountNumber, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawTransaction), args.Error(1)
}

func (m *MockBankGateway) CreateAccount(ctx context.Context, req gateways.CreateAccountRequest) (*gateways.AccountResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateways.AccountResult), args.Error(1)
}

func (m *MockBankGateway) Refund(ctx context.Context, req gateways.RefundRequest) (*gateways.RefundResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateways.RefundResult), args.Error(1)
}

func (m *MockBankGateway) InquireAccountOwner(ctx context.Context, accountNumber string) (*gateways.OwnerResult, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateways.OwnerResult), args.Error(1)
}

// staticResolver serves a fixed set of gateways.
type staticResolver map[string]gateways.BankGateway

func (r staticResolver) Gateway(bankCode string) (gateways.BankGateway, bool) {
	g, ok := r[bankCode]
	return g, ok
}

// fakeTxManager runs the unit of work against the mocked repositories and records outcomes.
type fakeTxManager struct {
	repos     portsrepo.RepositoryProvider
	calls     int
	rollbacks int
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.RepositoryProvider) error) error {
	f.calls++
	if err := fn(ctx, f.repos); err != nil {
		f.rollbacks++
		return err
	}
	return nil
}

// repoMocks bundles one mock per repository facade.
type repoMocks struct {
	club    *MockClubRepository
	member  *MockMemberRepository
	account *MockAccountRepository
	event   *MockEventRepository
	bankTx  *MockBankTransactionRepository
	ledger  *MockLedgerRepository
	request *MockPaymentRequestRepository
}

func newRepoMocks() repoMocks {
	return repoMocks{
		club:    new(MockClubRepository),
		member:  new(MockMemberRepository),
		account: new(MockAccountRepository),
		event:   new(MockEventRepository),
		bankTx:  new(MockBankTransactionRepository),
		ledger:  new(MockLedgerRepository),
		request: new(MockPaymentRequestRepository),
	}
}

func (r repoMocks) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ClubRepo:            r.club,
		MemberRepo:          r.member,
		AccountRepo:         r.account,
		EventRepo:           r.event,
		BankTransactionRepo: r.bankTx,
		LedgerRepo:          r.ledger,
		PaymentRequestRepo:  r.request,
	}
}

func (r repoMocks) assertExpectations(t mock.TestingT) {
	r.club.AssertExpectations(t)
	r.member.AssertExpectations(t)
	r.account.AssertExpectations(t)
	r.event.AssertExpectations(t)
	r.bankTx.AssertExpectations(t)
	r.ledger.AssertExpectations(t)
	r.request.AssertExpectations(t)
}
