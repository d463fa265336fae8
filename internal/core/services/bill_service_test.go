package services_test

import (
	"testing"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	"github.com/SscSPs/pocket_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type BillServiceTestSuite struct {
	ledgerSuite
}

func TestBillServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BillServiceTestSuite))
}

func (s *BillServiceTestSuite) millis(day int) int64 {
	return time.Date(2024, time.May, day, 12, 0, 0, 0, time.UTC).UnixMilli()
}

func (s *BillServiceTestSuite) createBill(req dto.CreateBillRequest) *domain.Bill {
	bill, err := s.svc.Bill.CreateBill(s.ctx, testUser, req)
	s.Require().NoError(err)
	return bill
}

func (s *BillServiceTestSuite) TestCreateBill_ExpenseLowersLinkedAsset() {
	wallet := s.createAsset(cashAccountID, "Wallet", 10000)

	bill := s.createBill(dto.CreateBillRequest{
		Type: domain.BillExpense, Amount: 1200, Date: s.millis(3),
		ClassifyID: foodClassifyID, AssetID: &wallet.ID,
	})
	s.True(bill.IsActive)

	s.Equal(domain.Money(8800), s.balance(wallet.ID))
	records := s.records(wallet.ID)
	s.Require().Len(records, 2)
	s.Equal(domain.Money(-1200), records[0].Delta)
	s.Equal(domain.ChangeExpense, records[0].Kind)
	s.Equal("expense(food)", records[0].Remark)
	s.Equal(s.millis(3), records[0].CreatedAt.UnixMilli())
	s.Equal(domain.Money(8800), s.aggregate("2024-05").PositiveTotal)
	s.requireTrailMatchesBalance(wallet.ID)
}

func (s *BillServiceTestSuite) TestCreateBill_WithoutAssetTouchesNoBalance() {
	bill := s.createBill(dto.CreateBillRequest{
		Type: domain.BillIncome, Amount: 500000, Date: s.millis(1), ClassifyID: salaryClassify,
	})
	s.Nil(bill.AssetID)
	s.Equal(domain.Money(0), s.aggregate("2024-05").PositiveTotal)
}

func (s *BillServiceTestSuite) TestCreateBill_MissingAssetRollsBack() {
	_, err := s.svc.Bill.CreateBill(s.ctx, testUser, dto.CreateBillRequest{
		Type: domain.BillExpense, Amount: 100, Date: s.millis(2),
		ClassifyID: foodClassifyID, AssetID: ptr("missing"),
	})
	s.ErrorIs(err, apperrors.ErrNotFound)

	bills, next, err := s.svc.Bill.ListBills(s.ctx, testUser, dto.ListBillsParams{})
	s.Require().NoError(err)
	s.Empty(bills)
	s.Nil(next)
}

func (s *BillServiceTestSuite) TestCreateBill_Validation() {
	_, err := s.svc.Bill.CreateBill(s.ctx, testUser, dto.CreateBillRequest{Type: "gift", Amount: 1, Date: 1, ClassifyID: foodClassifyID})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Bill.CreateBill(s.ctx, testUser, dto.CreateBillRequest{Type: domain.BillExpense, Amount: 0, Date: 1, ClassifyID: foodClassifyID})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Bill.CreateBill(s.ctx, testUser, dto.CreateBillRequest{Type: domain.BillExpense, Amount: 1, Date: 1, ClassifyID: "missing"})
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *BillServiceTestSuite) TestUpdateBill_SameAssetAppliesNet() {
	wallet := s.createAsset(cashAccountID, "Wallet", 10000)
	bill := s.createBill(dto.CreateBillRequest{
		Type: domain.BillExpense, Amount: 1000, Date: s.millis(3),
		ClassifyID: foodClassifyID, AssetID: &wallet.ID,
	})

	_, err := s.svc.Bill.UpdateBill(s.ctx, testUser, bill.ID, dto.UpdateBillRequest{Amount: ptr(domain.Money(1500))})
	s.Require().NoError(err)

	s.Equal(domain.Money(8500), s.balance(wallet.ID))
	s.Len(s.records(wallet.ID), 3)
	s.requireTrailMatchesBalance(wallet.ID)

	// Changing only the remark leaves the trail alone.
	_, err = s.svc.Bill.UpdateBill(s.ctx, testUser, bill.ID, dto.UpdateBillRequest{Remark: ptr("lunch")})
	s.Require().NoError(err)
	s.Len(s.records(wallet.ID), 3)
}

func (s *BillServiceTestSuite) TestUpdateBill_MovesBetweenAssets() {
	wallet := s.createAsset(cashAccountID, "Wallet", 10000)
	bank := s.createAsset(cashAccountID, "Bank", 20000)
	bill := s.createBill(dto.CreateBillRequest{
		Type: domain.BillExpense, Amount: 1000, Date: s.millis(3),
		ClassifyID: foodClassifyID, AssetID: &wallet.ID,
	})

	updated, err := s.svc.Bill.UpdateBill(s.ctx, testUser, bill.ID, dto.UpdateBillRequest{AssetID: &bank.ID})
	s.Require().NoError(err)
	s.Equal(bank.ID, *updated.AssetID)

	s.Equal(domain.Money(10000), s.balance(wallet.ID))
	s.Equal(domain.Money(19000), s.balance(bank.ID))
	walletTrail := s.records(wallet.ID)
	s.Equal("revert expense(food)", walletTrail[len(walletTrail)-1].Remark)
	s.requireTrailMatchesBalance(wallet.ID)
	s.requireTrailMatchesBalance(bank.ID)
	s.Equal(domain.Money(29000), s.aggregate("2024-05").PositiveTotal)
}

func (s *BillServiceTestSuite) TestUpdateBill_ClearAsset() {
	wallet := s.createAsset(cashAccountID, "Wallet", 10000)
	bill := s.createBill(dto.CreateBillRequest{
		Type: domain.BillExpense, Amount: 1000, Date: s.millis(3),
		ClassifyID: foodClassifyID, AssetID: &wallet.ID,
	})

	updated, err := s.svc.Bill.UpdateBill(s.ctx, testUser, bill.ID, dto.UpdateBillRequest{ClearAsset: true})
	s.Require().NoError(err)
	s.Nil(updated.AssetID)
	s.Equal(domain.Money(10000), s.balance(wallet.ID))

	_, err = s.svc.Bill.UpdateBill(s.ctx, testUser, bill.ID, dto.UpdateBillRequest{ClearAsset: true, AssetID: &wallet.ID})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *BillServiceTestSuite) TestUpdateBill_MoveIncomeInNewMonthNetsToNothing() {
	wallet := s.createAsset(cashAccountID, "Wallet", 10000)
	bank := s.createAsset(cashAccountID, "Bank", 0)
	bill := s.createBill(dto.CreateBillRequest{
		Type: domain.BillIncome, Amount: 2500, Date: s.millis(5),
		ClassifyID: salaryClassify, AssetID: &wallet.ID,
	})
	s.now = time.Date(2024, time.June, 2, 9, 0, 0, 0, time.UTC)

	_, err := s.svc.Bill.UpdateBill(s.ctx, testUser, bill.ID, dto.UpdateBillRequest{AssetID: &bank.ID})
	s.Require().NoError(err)

	s.Equal(domain.Money(10000), s.balance(wallet.ID))
	s.Equal(domain.Money(2500), s.balance(bank.ID))
	s.Equal(domain.Money(0), s.aggregate("2024-06").PositiveTotal)
	s.Equal(domain.Money(12500), s.aggregate("2024-05").PositiveTotal)
}

func (s *BillServiceTestSuite) TestDeleteBill_RevertsBalance() {
	wallet := s.createAsset(cashAccountID, "Wallet", 10000)
	bill := s.createBill(dto.CreateBillRequest{
		Type: domain.BillIncome, Amount: 2500, Date: s.millis(5),
		ClassifyID: salaryClassify, AssetID: &wallet.ID,
	})
	s.Equal(domain.Money(12500), s.balance(wallet.ID))

	s.Require().NoError(s.svc.Bill.DeleteBill(s.ctx, testUser, bill.ID))
	s.Equal(domain.Money(10000), s.balance(wallet.ID))
	s.Equal(domain.Money(10000), s.aggregate("2024-05").PositiveTotal)
	s.requireTrailMatchesBalance(wallet.ID)

	_, err := s.svc.Bill.GetBill(s.ctx, testUser, bill.ID)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.ErrorIs(s.svc.Bill.DeleteBill(s.ctx, testUser, bill.ID), apperrors.ErrNotFound)
}

func (s *BillServiceTestSuite) TestDeleteBill_AssetAlreadyGone() {
	wallet := s.createAsset(cashAccountID, "Wallet", 10000)
	bill := s.createBill(dto.CreateBillRequest{
		Type: domain.BillExpense, Amount: 1000, Date: s.millis(3),
		ClassifyID: foodClassifyID, AssetID: &wallet.ID,
	})
	s.Require().NoError(s.svc.Asset.DeleteAsset(s.ctx, testUser, wallet.ID))

	s.Require().NoError(s.svc.Bill.DeleteBill(s.ctx, testUser, bill.ID))
	s.Equal(domain.Money(0), s.aggregate("2024-05").PositiveTotal)
}

func (s *BillServiceTestSuite) TestListBills_Pages() {
	for day := 1; day <= 5; day++ {
		s.createBill(dto.CreateBillRequest{
			Type: domain.BillExpense, Amount: domain.Money(day * 100), Date: s.millis(day), ClassifyID: foodClassifyID,
		})
	}

	first, next, err := s.svc.Bill.ListBills(s.ctx, testUser, dto.ListBillsParams{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(first, 2)
	s.Require().NotNil(next)
	s.Equal(s.millis(5), first[0].Date)
	s.Equal(s.millis(4), first[1].Date)

	second, next, err := s.svc.Bill.ListBills(s.ctx, testUser, dto.ListBillsParams{Limit: 2, NextToken: *next})
	s.Require().NoError(err)
	s.Require().Len(second, 2)
	s.Equal(s.millis(3), second[0].Date)

	third, next, err := s.svc.Bill.ListBills(s.ctx, testUser, dto.ListBillsParams{Limit: 2, NextToken: *next})
	s.Require().NoError(err)
	s.Require().Len(third, 1)
	s.Nil(next)

	_, _, err = s.svc.Bill.ListBills(s.ctx, testUser, dto.ListBillsParams{NextToken: "!!"})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *BillServiceTestSuite) TestStatistics_Month() {
	s.createBill(dto.CreateBillRequest{Type: domain.BillExpense, Amount: 300, Date: s.millis(2), ClassifyID: foodClassifyID})
	s.createBill(dto.CreateBillRequest{Type: domain.BillExpense, Amount: 700, Date: s.millis(2), ClassifyID: rentClassifyID})
	s.createBill(dto.CreateBillRequest{Type: domain.BillIncome, Amount: 5000, Date: s.millis(20), ClassifyID: salaryClassify})

	stats, err := s.svc.Bill.Statistics(s.ctx, testUser, dto.BillStatisticsParams{TimeRange: "month"})
	s.Require().NoError(err)
	s.Equal(domain.Money(1000), stats.Summary.Expense)
	s.Equal(domain.Money(5000), stats.Summary.Income)
	s.Require().Len(stats.Daily, 2)
	s.Equal("2024-05-02", stats.Daily[0].Date)
	s.Len(stats.Bills, 3)

	_, err = s.svc.Bill.Statistics(s.ctx, testUser, dto.BillStatisticsParams{TimeRange: "decade"})
	s.ErrorIs(err, apperrors.ErrValidation)

	current, err := s.svc.Bill.CurrentBills(s.ctx, testUser, "year")
	s.Require().NoError(err)
	s.Len(current, 3)
}
