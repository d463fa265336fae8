package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/dto"
	"github.com/SscSPs/pocket_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to asset accounts.
type accountHandler struct {
	accountService portssvc.AccountRegistrySvc
}

func newAccountHandler(as portssvc.AccountRegistrySvc) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers routes related to asset accounts.
// Accounts are shared, so only admins change them.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountRegistrySvc) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("", middleware.RequireAdmin(), h.createAccount)
		accounts.DELETE("/:id", middleware.RequireAdmin(), h.deactivateAccount)
	}
}

// listAccounts godoc
// @Summary List asset accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} dto.Response{data=[]dto.AssetAccountResponse}
// @Failure 401 {object} dto.Response
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	respondOK(c, http.StatusOK, "ok", dto.ToListAssetAccountResponse(accounts))
}

// createAccount godoc
// @Summary Create an asset account
// @Description Creates a top-level account or a child of an existing top-level account of the same kind
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAssetAccountRequest true "Account details"
// @Success 201 {object} dto.Response{data=dto.AssetAccountResponse}
// @Failure 400 {object} dto.Response
// @Failure 403 {object} dto.Response
// @Failure 404 {object} dto.Response "Parent account not found"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	var req dto.CreateAssetAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account created", slog.String("account_id", account.ID))
	respondOK(c, http.StatusCreated, "account created", dto.ToAssetAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate an asset account
// @Tags accounts
// @Param id path string true "Account ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 409 {object} dto.Response "Account still has active children"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	if err := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to deactivate account")
		return
	}
	respondOK(c, http.StatusOK, "account deactivated", nil)
}
