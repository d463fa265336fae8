package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(svc portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: svc}
}

func registerBudgetRoutes(rg *gin.RouterGroup, svc portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(svc)

	budgets := rg.Group("/budgets")
	{
		budgets.GET("", h.listBudgets)
		budgets.POST("", h.createBudget)
		budgets.GET("/usage", h.usage)
		budgets.GET("/:id", h.getBudget)
		budgets.PUT("/:id", h.updateBudget)
		budgets.DELETE("/:id", h.deleteBudget)
	}
}

// listBudgets godoc
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Param type query string false "monthly or yearly"
// @Success 200 {object} dto.Response{data=[]dto.BudgetResponse}
// @Security BearerAuth
// @Router /budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), userID, domain.BudgetType(c.Query("type")))
	if err != nil {
		respondError(c, err, "Failed to list budgets")
		return
	}
	respondOK(c, http.StatusOK, "ok", dto.ToListBudgetResponse(budgets))
}

// usage godoc
// @Summary Budget usage
// @Description Compares each budget of the type against expenses in the month or year of date
// @Tags budgets
// @Produce json
// @Param type query string true "monthly or yearly"
// @Param date query int false "Anchor in epoch milliseconds, defaults to now"
// @Success 200 {object} dto.Response{data=[]dto.BudgetUsageResponse}
// @Failure 400 {object} dto.Response
// @Failure 422 {object} dto.Response "A budget has no amount"
// @Security BearerAuth
// @Router /budgets/usage [get]
func (h *budgetHandler) usage(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.BudgetUsageParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	anchor := time.Now()
	if params.Date > 0 {
		anchor = time.UnixMilli(params.Date)
	}

	usages, err := h.budgetService.Usage(c.Request.Context(), userID, domain.BudgetType(params.Type), anchor)
	if err != nil {
		respondError(c, err, "Failed to compute budget usage")
		return
	}
	respondOK(c, http.StatusOK, "ok", dto.ToBudgetUsageResponse(usages))
}

// getBudget godoc
// @Summary Get a budget
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.Response{data=dto.BudgetResponse}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /budgets/{id} [get]
func (h *budgetHandler) getBudget(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	budget, err := h.budgetService.GetBudget(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get budget")
		return
	}
	respondOK(c, http.StatusOK, "ok", dto.ToBudgetResponse(budget))
}

// createBudget godoc
// @Summary Create or replace a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param budget body dto.CreateBudgetRequest true "Budget, amount in minor units"
// @Success 201 {object} dto.Response{data=dto.BudgetResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	budget, err := h.budgetService.CreateBudget(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to save budget")
		return
	}
	respondOK(c, http.StatusCreated, "budget saved", dto.ToBudgetResponse(budget))
}

// updateBudget godoc
// @Summary Change a budget's amount
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param budget body dto.UpdateBudgetRequest true "New amount in minor units"
// @Success 200 {object} dto.Response{data=dto.BudgetResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /budgets/{id} [put]
func (h *budgetHandler) updateBudget(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update budget")
		return
	}
	respondOK(c, http.StatusOK, "budget updated", dto.ToBudgetResponse(budget))
}

// deleteBudget godoc
// @Summary Delete a budget and its sub-budgets
// @Tags budgets
// @Param id path string true "Budget ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /budgets/{id} [delete]
func (h *budgetHandler) deleteBudget(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.budgetService.DeleteBudget(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete budget")
		return
	}
	respondOK(c, http.StatusOK, "budget deleted", nil)
}
