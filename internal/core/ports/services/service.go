package services

// ServiceContainer holds instances of all the application services.
// Handlers and the CLI reach functionality through it.
type ServiceContainer struct {
	Account      AccountRegistrySvc
	Asset        AssetSvcFacade
	ChangeRecord ChangeRecordSvc
	Aggregate    MonthlyAggregateSvc
	Bill         BillSvcFacade
	Budget       BudgetSvcFacade
}
