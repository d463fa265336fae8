package repositories

// RepositoryProvider holds every repository the services depend on.
// Both the postgres and the in-memory stores fill the same struct.
type RepositoryProvider struct {
	Ledger        TransactionManager
	AccountRepo   AssetAccountRepositoryFacade
	CategoryRepo  CategoryReader
	AssetRepo     AssetReader
	ChangeRepo    ChangeRecordReader
	AggregateRepo MonthlyAggregateRepositoryFacade
	BillRepo      BillReader
	BudgetRepo    BudgetRepositoryFacade
}
