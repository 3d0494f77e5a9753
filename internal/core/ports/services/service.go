package services

// ServiceContainer holds instances of all the application services.
// It is the entry point the handlers, the CLI and the scheduler use.
type ServiceContainer struct {
	Club           ClubSvcFacade
	Sync           SyncSvc
	Ledger         LedgerSvcFacade
	Reconciliation ReconciliationSvcFacade
	PaymentRequest PaymentRequestSvc
	Settlement     SettlementSvc
}
