package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// The same struct is handed to units of work, then bound to the open transaction.
type RepositoryProvider struct {
	ClubRepo            ClubRepositoryFacade
	MemberRepo          MemberRepositoryFacade
	AccountRepo         AccountRepositoryFacade
	EventRepo           EventRepositoryFacade
	BankTransactionRepo BankTransactionRepositoryFacade
	LedgerRepo          LedgerRepositoryFacade
	PaymentRequestRepo  PaymentRequestRepositoryFacade
}
