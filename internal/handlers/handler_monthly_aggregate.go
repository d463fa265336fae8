package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/dto"
	"github.com/SscSPs/pocket_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type monthlyAggregateHandler struct {
	aggregateService portssvc.MonthlyAggregateSvc
}

func newMonthlyAggregateHandler(svc portssvc.MonthlyAggregateSvc) *monthlyAggregateHandler {
	return &monthlyAggregateHandler{aggregateService: svc}
}

func registerMonthlyAggregateRoutes(rg *gin.RouterGroup, svc portssvc.MonthlyAggregateSvc) {
	h := newMonthlyAggregateHandler(svc)

	stats := rg.Group("/monthly-aggregates")
	{
		stats.GET("", h.listAggregates)
		stats.POST("", h.createAggregate)
		stats.GET("/year/:year", h.findByYear)
		stats.GET("/:id", h.getAggregate)
		stats.PUT("/:id", h.updateAggregate)
		stats.DELETE("/:id", h.deleteAggregate)
	}

	admin := rg.Group("/admin", middleware.RequireAdmin())
	admin.POST("/reconcile/:userId", h.reconcile)
}

// listAggregates godoc
// @Summary List monthly aggregates
// @Tags monthly-aggregates
// @Produce json
// @Success 200 {object} dto.Response{data=[]dto.MonthlyAggregateResponse}
// @Security BearerAuth
// @Router /monthly-aggregates [get]
func (h *monthlyAggregateHandler) listAggregates(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	rows, err := h.aggregateService.ListAggregates(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list monthly aggregates")
		return
	}
	respondOK(c, http.StatusOK, "ok", dto.ToListMonthlyAggregateResponse(rows))
}

// findByYear godoc
// @Summary Monthly aggregates of a year
// @Description Twelve months, zero-filled where nothing was recorded
// @Tags monthly-aggregates
// @Produce json
// @Param year path string true "Year as YYYY"
// @Success 200 {object} dto.Response{data=[]dto.MonthlyAggregateResponse}
// @Failure 400 {object} dto.Response
// @Security BearerAuth
// @Router /monthly-aggregates/year/{year} [get]
func (h *monthlyAggregateHandler) findByYear(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	rows, err := h.aggregateService.FindByYear(c.Request.Context(), userID, c.Param("year"))
	if err != nil {
		respondError(c, err, "Failed to load monthly aggregates")
		return
	}
	respondOK(c, http.StatusOK, "ok", dto.ToListMonthlyAggregateResponse(rows))
}

// getAggregate godoc
// @Summary Get a monthly aggregate
// @Tags monthly-aggregates
// @Produce json
// @Param id path string true "Aggregate ID"
// @Success 200 {object} dto.Response{data=dto.MonthlyAggregateResponse}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /monthly-aggregates/{id} [get]
func (h *monthlyAggregateHandler) getAggregate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	agg, err := h.aggregateService.GetAggregate(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get monthly aggregate")
		return
	}
	respondOK(c, http.StatusOK, "ok", dto.ToMonthlyAggregateResponse(agg))
}

// createAggregate godoc
// @Summary Record a month's totals by hand
// @Tags monthly-aggregates
// @Accept json
// @Produce json
// @Param aggregate body dto.CreateMonthlyAggregateRequest true "Totals in minor units"
// @Success 201 {object} dto.Response{data=dto.MonthlyAggregateResponse}
// @Failure 400 {object} dto.Response
// @Failure 409 {object} dto.Response "Month already recorded"
// @Security BearerAuth
// @Router /monthly-aggregates [post]
func (h *monthlyAggregateHandler) createAggregate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateMonthlyAggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	agg, err := h.aggregateService.CreateAggregate(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create monthly aggregate")
		return
	}
	respondOK(c, http.StatusCreated, "monthly aggregate created", dto.ToMonthlyAggregateResponse(agg))
}

// updateAggregate godoc
// @Summary Overwrite a month's totals
// @Tags monthly-aggregates
// @Accept json
// @Produce json
// @Param id path string true "Aggregate ID"
// @Param aggregate body dto.UpdateMonthlyAggregateRequest true "Totals in minor units"
// @Success 200 {object} dto.Response{data=dto.MonthlyAggregateResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /monthly-aggregates/{id} [put]
func (h *monthlyAggregateHandler) updateAggregate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateMonthlyAggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	agg, err := h.aggregateService.UpdateAggregate(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update monthly aggregate")
		return
	}
	respondOK(c, http.StatusOK, "monthly aggregate updated", dto.ToMonthlyAggregateResponse(agg))
}

// deleteAggregate godoc
// @Summary Delete a monthly aggregate
// @Tags monthly-aggregates
// @Param id path string true "Aggregate ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /monthly-aggregates/{id} [delete]
func (h *monthlyAggregateHandler) deleteAggregate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.aggregateService.DeleteAggregate(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete monthly aggregate")
		return
	}
	respondOK(c, http.StatusOK, "monthly aggregate deleted", nil)
}

// reconcile godoc
// @Summary Recompute the current month from asset balances
// @Tags admin
// @Produce json
// @Param userId path string true "User whose aggregate is rebuilt"
// @Success 200 {object} dto.Response{data=dto.MonthlyAggregateResponse}
// @Failure 403 {object} dto.Response
// @Security BearerAuth
// @Router /admin/reconcile/{userId} [post]
func (h *monthlyAggregateHandler) reconcile(c *gin.Context) {
	target := c.Param("userId")
	agg, err := h.aggregateService.Reconcile(c.Request.Context(), target)
	if err != nil {
		respondError(c, err, "Failed to reconcile monthly aggregate")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Reconciled monthly aggregate", slog.String("target_user_id", target))
	respondOK(c, http.StatusOK, "monthly aggregate reconciled", dto.ToMonthlyAggregateResponse(agg))
}
