package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AssetService ---
type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) GetAsset(ctx context.Context, userID, assetID string) (*domain.Asset, error) {
	args := m.Called(ctx, userID, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
func (m *MockAssetService) ListAssets(ctx context.Context, userID string, filter portsrepo.AssetFilter) ([]domain.Asset, domain.AssetSummary, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, domain.AssetSummary{}, args.Error(2)
	}
	return args.Get(0).([]domain.Asset), args.Get(1).(domain.AssetSummary), args.Error(2)
}
func (m *MockAssetService) CreateAsset(ctx context.Context, userID string, req dto.CreateAssetRequest) (*domain.Asset, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
func (m *MockAssetService) UpdateAsset(ctx context.Context, userID, assetID string, req dto.UpdateAssetRequest) (*domain.Asset, error) {
	args := m.Called(ctx, userID, assetID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
func (m *MockAssetService) DeleteAsset(ctx context.Context, userID, assetID string) error {
	args := m.Called(ctx, userID, assetID)
	return args.Error(0)
}
func (m *MockAssetService) Transfer(ctx context.Context, userID string, req dto.TransferRequest) (*domain.TransferResult, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferResult), args.Error(1)
}

var _ portssvc.AssetSvcFacade = (*MockAssetService)(nil)

// --- Mock BillService ---
type MockBillService struct {
	mock.Mock
}

func (m *MockBillService) GetBill(ctx context.Context, userID, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, userID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}
func (m *MockBillService) ListBills(ctx context.Context, userID string, params dto.ListBillsParams) ([]domain.Bill, *string, error) {
	args := m.Called(ctx, userID, params)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Bill), next, args.Error(2)
}
func (m *MockBillService) Statistics(ctx context.Context, userID string, params dto.BillStatisticsParams) (*domain.BillStatistics, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BillStatistics), args.Error(1)
}
func (m *MockBillService) CurrentBills(ctx context.Context, userID, timeRange string) ([]domain.Bill, error) {
	args := m.Called(ctx, userID, timeRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}
func (m *MockBillService) CreateBill(ctx context.Context, userID string, req dto.CreateBillRequest) (*domain.Bill, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}
func (m *MockBillService) UpdateBill(ctx context.Context, userID, billID string, req dto.UpdateBillRequest) (*domain.Bill, error) {
	args := m.Called(ctx, userID, billID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}
func (m *MockBillService) DeleteBill(ctx context.Context, userID, billID string) error {
	args := m.Called(ctx, userID, billID)
	return args.Error(0)
}

var _ portssvc.BillSvcFacade = (*MockBillService)(nil)

// --- Mock BudgetService ---
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}
func (m *MockBudgetService) UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	args := m.Called(ctx, userID, budgetID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}
func (m *MockBudgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	args := m.Called(ctx, userID, budgetID)
	return args.Error(0)
}
func (m *MockBudgetService) GetBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, userID, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}
func (m *MockBudgetService) ListBudgets(ctx context.Context, userID string, budgetType domain.BudgetType) ([]domain.Budget, error) {
	args := m.Called(ctx, userID, budgetType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}
func (m *MockBudgetService) Usage(ctx context.Context, userID string, budgetType domain.BudgetType, anchor time.Time) ([]domain.BudgetUsage, error) {
	args := m.Called(ctx, userID, budgetType, anchor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetUsage), args.Error(1)
}

var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)

// --- Mock MonthlyAggregateService ---
type MockAggregateService struct {
	mock.Mock
}

func (m *MockAggregateService) Apply(ctx context.Context, task domain.AggregateTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}
func (m *MockAggregateService) ListAggregates(ctx context.Context, userID string) ([]domain.MonthlyAggregate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyAggregate), args.Error(1)
}
func (m *MockAggregateService) FindByYear(ctx context.Context, userID, year string) ([]domain.MonthlyAggregate, error) {
	args := m.Called(ctx, userID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyAggregate), args.Error(1)
}
func (m *MockAggregateService) GetAggregate(ctx context.Context, userID, aggregateID string) (*domain.MonthlyAggregate, error) {
	args := m.Called(ctx, userID, aggregateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyAggregate), args.Error(1)
}
func (m *MockAggregateService) CreateAggregate(ctx context.Context, userID string, req dto.CreateMonthlyAggregateRequest) (*domain.MonthlyAggregate, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyAggregate), args.Error(1)
}
func (m *MockAggregateService) UpdateAggregate(ctx context.Context, userID, aggregateID string, req dto.UpdateMonthlyAggregateRequest) (*domain.MonthlyAggregate, error) {
	args := m.Called(ctx, userID, aggregateID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyAggregate), args.Error(1)
}
func (m *MockAggregateService) DeleteAggregate(ctx context.Context, userID, aggregateID string) error {
	args := m.Called(ctx, userID, aggregateID)
	return args.Error(0)
}
func (m *MockAggregateService) Reconcile(ctx context.Context, userID string) (*domain.MonthlyAggregate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyAggregate), args.Error(1)
}

var _ portssvc.MonthlyAggregateSvc = (*MockAggregateService)(nil)
