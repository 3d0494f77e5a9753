package services

import (
	"github.com/SscSPs/club_ledger_app/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/club_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/club_ledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// repos is bound to the pool for reads; txManager hands out transaction-bound repositories for writes.
func NewServiceContainer(repos portsrepo.RepositoryProvider, txManager portsrepo.TransactionManager, resolver gateways.GatewayResolver, syncCfg SyncConfig, opts ...Option) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Club:           NewClubService(repos, resolver, opts...),
		Sync:           NewSyncService(repos, txManager, resolver, syncCfg, opts...),
		Ledger:         NewLedgerService(repos, txManager, opts...),
		Reconciliation: NewReconciliationService(repos, txManager, opts...),
		PaymentRequest: NewPaymentRequestService(repos, opts...),
		Settlement:     NewSettlementService(repos, txManager, resolver, opts...),
	}
}
