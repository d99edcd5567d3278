package services

import (
	portscache "github.com/SscSPs/splitledger/internal/core/ports/cache"
	portsrepo "github.com/SscSPs/splitledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/splitledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// invoiceCache may be nil to disable caching. When it also observes invoice
// writes it is registered ahead of the other observers so that stale books are
// dropped before anyone else reacts.
func NewServiceContainer(
	repos portsrepo.RepositoryProvider,
	invoiceCache portscache.InvoiceCache,
	observers ...portscache.InvoiceObserver,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	var all []portscache.InvoiceObserver
	if o, ok := invoiceCache.(portscache.InvoiceObserver); ok {
		all = append(all, o)
	}
	all = append(all, observers...)

	container.Ledger = NewLedgerService(repos.AccountRepo, repos.TransactionRepo, repos.MemberRepo)

	invoiceOpts := []InvoiceServiceOption{WithInvoiceObservers(all...)}
	if invoiceCache != nil {
		invoiceOpts = append(invoiceOpts, WithInvoiceCache(invoiceCache))
	}
	container.Invoice = NewInvoiceService(repos.TransactionRepo, repos.MemberRepo, invoiceOpts...)

	container.Settlement = NewSettlementService(repos.TransactionRepo, repos.MemberRepo)
	container.Installment = NewInstallmentService(repos.TransactionRepo, WithInstallmentObservers(all...))

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.LedgerSvcFacade      = (*ledgerService)(nil)
	_ portssvc.InvoiceSvcFacade     = (*invoiceService)(nil)
	_ portssvc.SettlementSvcFacade  = (*settlementService)(nil)
	_ portssvc.InstallmentSvcFacade = (*installmentService)(nil)
)
