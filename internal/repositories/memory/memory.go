// Package memory provides an in-memory store used for development and tests.
// It implements the same repository ports as the postgres store.
package memory

import (
	"slices"
	"sync"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
)

// Store keeps every table in maps guarded by an RWMutex. Ledger transactions
// are serialized by txMu and undone from a log on failure.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	accounts   map[string]domain.AssetAccount
	classifies map[string]domain.Classify
	tags       map[string]domain.Tag
	assets     map[string]domain.Asset
	records    map[string]domain.ChangeRecord
	recordSeq  map[string]int64
	aggregates map[string]domain.MonthlyAggregate
	aggIndex   map[string]string
	bills      map[string]domain.Bill
	budgets    map[string]domain.Budget
	seq        int64
}

// New constructs an empty in-memory store.
func New() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset drops all data.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = map[string]domain.AssetAccount{}
	s.classifies = map[string]domain.Classify{}
	s.tags = map[string]domain.Tag{}
	s.assets = map[string]domain.Asset{}
	s.records = map[string]domain.ChangeRecord{}
	s.recordSeq = map[string]int64{}
	s.aggregates = map[string]domain.MonthlyAggregate{}
	s.aggIndex = map[string]string{}
	s.bills = map[string]domain.Bill{}
	s.budgets = map[string]domain.Budget{}
	s.seq = 0
}

// Seed helpers for local dev and tests.
func (s *Store) SeedAccount(a domain.AssetAccount) { s.mu.Lock(); s.accounts[a.ID] = a; s.mu.Unlock() }
func (s *Store) SeedClassify(c domain.Classify)    { s.mu.Lock(); s.classifies[c.ID] = c; s.mu.Unlock() }
func (s *Store) SeedTag(t domain.Tag)              { s.mu.Lock(); s.tags[t.ID] = t; s.mu.Unlock() }

// Provider exposes the store through every repository port.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Ledger:        s,
		AccountRepo:   s,
		CategoryRepo:  s,
		AssetRepo:     s,
		ChangeRepo:    s,
		AggregateRepo: s,
		BillRepo:      s,
		BudgetRepo:    s,
	}
}

var (
	_ portsrepo.TransactionManager               = (*Store)(nil)
	_ portsrepo.AssetAccountRepositoryFacade     = (*Store)(nil)
	_ portsrepo.CategoryReader                   = (*Store)(nil)
	_ portsrepo.AssetReader                      = (*Store)(nil)
	_ portsrepo.ChangeRecordReader               = (*Store)(nil)
	_ portsrepo.MonthlyAggregateRepositoryFacade = (*Store)(nil)
	_ portsrepo.BillReader                       = (*Store)(nil)
	_ portsrepo.BudgetRepositoryFacade           = (*Store)(nil)
)

func cloneBill(b domain.Bill) domain.Bill {
	b.Images = slices.Clone(b.Images)
	return b
}

func sameOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
