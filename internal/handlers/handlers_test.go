package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/dto"
	"github.com/SscSPs/pocket_ledger/internal/handlers"
	"github.com/SscSPs/pocket_ledger/internal/platform/config"
	"github.com/SscSPs/pocket_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "pocket_ledger-test"
	testUserID = "user-1"
)

type envelope struct {
	Code    int             `json:"code"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type HandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockAsset     *MockAssetService
	mockBill      *MockBillService
	mockBudget    *MockBudgetService
	mockAggregate *MockAggregateService
}

func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockAsset = new(MockAssetService)
	suite.mockBill = new(MockBillService)
	suite.mockBudget = new(MockBudgetService)
	suite.mockAggregate = new(MockAggregateService)

	cfg := &config.Config{JWTSecret: testSecret, JWTIssuer: testIssuer, IsProduction: true}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Asset:     suite.mockAsset,
		Bill:      suite.mockBill,
		Budget:    suite.mockBudget,
		Aggregate: suite.mockAggregate,
	})
}

func (suite *HandlerTestSuite) token(userID, role string) string {
	token, err := utils.GenerateJWT(userID, role, testSecret, time.Hour, testIssuer)
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *HandlerTestSuite) do(method, url string, body any, token string) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "" && bytes.HasPrefix(w.Body.Bytes(), []byte("{")) {
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (suite *HandlerTestSuite) TestHealth() {
	w, _ := suite.do(http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestMissingToken() {
	w, env := suite.do(http.MethodGet, "/api/v1/assets/a-1", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.False(env.Success)
	suite.mockAsset.AssertNotCalled(suite.T(), "GetAsset")
}

func (suite *HandlerTestSuite) TestWrongIssuerRejected() {
	token, err := utils.GenerateJWT(testUserID, "", testSecret, time.Hour, "someone-else")
	suite.Require().NoError(err)
	w, _ := suite.do(http.MethodGet, "/api/v1/assets/a-1", nil, token)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestGetAsset_Success() {
	asset := &domain.Asset{ID: "a-1", UserID: testUserID, AccountID: "cash", Name: "Wallet", Amount: 12345, Kind: domain.KindPositive}
	suite.mockAsset.On("GetAsset", mock.Anything, testUserID, "a-1").Return(asset, nil).Once()

	w, env := suite.do(http.MethodGet, "/api/v1/assets/a-1", nil, suite.token(testUserID, ""))

	suite.Equal(http.StatusOK, w.Code)
	suite.True(env.Success)
	var got dto.AssetResponse
	suite.Require().NoError(json.Unmarshal(env.Data, &got))
	suite.Equal("a-1", got.ID)
	suite.Equal(domain.Money(12345), got.Amount)
	suite.Equal("123.45", got.AmountDisplay)
	suite.mockAsset.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetAsset_NotFound() {
	suite.mockAsset.On("GetAsset", mock.Anything, testUserID, "missing").
		Return(nil, fmt.Errorf("asset missing: %w", apperrors.ErrNotFound)).Once()

	w, env := suite.do(http.MethodGet, "/api/v1/assets/missing", nil, suite.token(testUserID, ""))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.False(env.Success)
	suite.Equal(http.StatusNotFound, env.Code)
}

func (suite *HandlerTestSuite) TestGetAsset_InternalErrorHidesCause() {
	suite.mockAsset.On("GetAsset", mock.Anything, testUserID, "a-1").
		Return(nil, errors.New("connection reset by peer")).Once()

	w, env := suite.do(http.MethodGet, "/api/v1/assets/a-1", nil, suite.token(testUserID, ""))

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to get asset", env.Message)
}

func (suite *HandlerTestSuite) TestTransfer_SameAssetRejectedByBinding() {
	req := dto.TransferRequest{FromAssetID: "a-1", ToAssetID: "a-1", Amount: 100}

	w, _ := suite.do(http.MethodPost, "/api/v1/assets/transfer", req, suite.token(testUserID, ""))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAsset.AssertNotCalled(suite.T(), "Transfer")
}

func (suite *HandlerTestSuite) TestTransfer_InsufficientFunds() {
	req := dto.TransferRequest{FromAssetID: "a-1", ToAssetID: "a-2", Amount: 100}
	suite.mockAsset.On("Transfer", mock.Anything, testUserID, req).
		Return(nil, apperrors.ErrInsufficientFunds).Once()

	w, env := suite.do(http.MethodPost, "/api/v1/assets/transfer", req, suite.token(testUserID, ""))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(env.Message, "insufficient funds")
	suite.mockAsset.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateAsset_NegativeAmountRejected() {
	body := map[string]any{"accountId": "cash", "name": "Wallet", "amount": -5}

	w, _ := suite.do(http.MethodPost, "/api/v1/assets", body, suite.token(testUserID, ""))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAsset.AssertNotCalled(suite.T(), "CreateAsset")
}

func (suite *HandlerTestSuite) TestListBills_ReturnsNextToken() {
	next := "eyJkIjoxfQ"
	bills := []domain.Bill{
		{ID: "b-2", UserID: testUserID, Type: domain.BillExpense, Amount: 500, Date: 2000, ClassifyID: "food"},
		{ID: "b-1", UserID: testUserID, Type: domain.BillExpense, Amount: 700, Date: 1000, ClassifyID: "food"},
	}
	suite.mockBill.On("ListBills", mock.Anything, testUserID, mock.MatchedBy(func(p dto.ListBillsParams) bool {
		return p.Limit == 2 && p.Type == "expense"
	})).Return(bills, &next, nil).Once()

	w, env := suite.do(http.MethodGet, "/api/v1/bills?limit=2&type=expense", nil, suite.token(testUserID, ""))

	suite.Equal(http.StatusOK, w.Code)
	var got dto.ListBillsResponse
	suite.Require().NoError(json.Unmarshal(env.Data, &got))
	suite.Len(got.Bills, 2)
	suite.Equal("b-2", got.Bills[0].ID)
	suite.Require().NotNil(got.NextToken)
	suite.Equal(next, *got.NextToken)
	suite.mockBill.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestListBills_LimitOutOfRange() {
	w, _ := suite.do(http.MethodGet, "/api/v1/bills?limit=500", nil, suite.token(testUserID, ""))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBill.AssertNotCalled(suite.T(), "ListBills")
}

func (suite *HandlerTestSuite) TestDeleteBill_NotFound() {
	suite.mockBill.On("DeleteBill", mock.Anything, testUserID, "b-9").Return(apperrors.ErrNotFound).Once()

	w, _ := suite.do(http.MethodDelete, "/api/v1/bills/b-9", nil, suite.token(testUserID, ""))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockBill.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestBudgetUsage_InvalidBudget() {
	anchor := time.Date(2024, time.May, 14, 0, 0, 0, 0, time.UTC)
	suite.mockBudget.On("Usage", mock.Anything, testUserID, domain.BudgetMonthly, mock.MatchedBy(func(t time.Time) bool {
		return t.Equal(anchor)
	})).Return(nil, apperrors.ErrInvalidBudget).Once()

	url := fmt.Sprintf("/api/v1/budgets/usage?type=monthly&date=%d", anchor.UnixMilli())
	w, env := suite.do(http.MethodGet, url, nil, suite.token(testUserID, ""))

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.False(env.Success)
	suite.mockBudget.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestBudgetUsage_TypeRequired() {
	w, _ := suite.do(http.MethodGet, "/api/v1/budgets/usage", nil, suite.token(testUserID, ""))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBudget.AssertNotCalled(suite.T(), "Usage")
}

func (suite *HandlerTestSuite) TestReconcile_RequiresAdmin() {
	w, _ := suite.do(http.MethodPost, "/api/v1/admin/reconcile/user-2", nil, suite.token(testUserID, ""))

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockAggregate.AssertNotCalled(suite.T(), "Reconcile")
}

func (suite *HandlerTestSuite) TestReconcile_Admin() {
	agg := &domain.MonthlyAggregate{ID: "m-1", UserID: "user-2", Month: "2024-05", PositiveTotal: 9000, NegativeTotal: 1000}
	suite.mockAggregate.On("Reconcile", mock.Anything, "user-2").Return(agg, nil).Once()

	w, env := suite.do(http.MethodPost, "/api/v1/admin/reconcile/user-2", nil, suite.token("ops", utils.RoleAdmin))

	suite.Equal(http.StatusOK, w.Code)
	suite.True(env.Success)
	suite.mockAggregate.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateAccount_RequiresAdmin() {
	body := dto.CreateAssetAccountRequest{Name: "Cash", Kind: domain.KindPositive}

	w, _ := suite.do(http.MethodPost, "/api/v1/accounts", body, suite.token(testUserID, ""))

	suite.Equal(http.StatusForbidden, w.Code)
}
