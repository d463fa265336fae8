package services

import (
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
)

// NewServiceContainer wires every service over one repository provider.
// The aggregate service is built first; dispatcher constructors that need an
// applier receive it through newDispatcher.
func NewServiceContainer(repos portsrepo.RepositoryProvider, newDispatcher func(portssvc.AggregateApplier) portssvc.AggregateDispatcher, options ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Aggregate = NewAggregateService(repos.AggregateRepo, repos.AssetRepo, options...)

	ledgerOptions := options
	if newDispatcher != nil {
		ledgerOptions = append(append([]ServiceOption{}, options...), WithDispatcher(newDispatcher(container.Aggregate)))
	}

	container.Account = NewAccountService(repos.AccountRepo, options...)
	container.Asset = NewAssetService(repos.Ledger, repos.AssetRepo, repos.AccountRepo, ledgerOptions...)
	container.ChangeRecord = NewChangeRecordService(repos.Ledger, repos.AssetRepo, repos.ChangeRepo, options...)
	container.Bill = NewBillService(repos.Ledger, repos.BillRepo, repos.CategoryRepo, ledgerOptions...)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.BillRepo, repos.CategoryRepo, options...)

	return container
}
