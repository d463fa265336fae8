package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type billHandler struct {
	billService portssvc.BillSvcFacade
}

func newBillHandler(svc portssvc.BillSvcFacade) *billHandler {
	return &billHandler{billService: svc}
}

func registerBillRoutes(rg *gin.RouterGroup, svc portssvc.BillSvcFacade) {
	h := newBillHandler(svc)

	bills := rg.Group("/bills")
	{
		bills.GET("", h.listBills)
		bills.POST("", h.createBill)
		bills.GET("/statistics", h.statistics)
		bills.GET("/current/:range", h.currentBills)
		bills.GET("/:id", h.getBill)
		bills.PUT("/:id", h.updateBill)
		bills.DELETE("/:id", h.deleteBill)
	}
}

// listBills godoc
// @Summary List bills
// @Description Newest first, paged with nextToken
// @Tags bills
// @Produce json
// @Param type query string false "expense or income"
// @Param startDate query int false "Epoch milliseconds, inclusive"
// @Param endDate query int false "Epoch milliseconds, inclusive"
// @Param keyword query string false "Matches the remark"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.Response{data=dto.ListBillsResponse}
// @Failure 400 {object} dto.Response
// @Security BearerAuth
// @Router /bills [get]
func (h *billHandler) listBills(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListBillsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	bills, nextToken, err := h.billService.ListBills(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list bills")
		return
	}
	respondOK(c, http.StatusOK, "ok", dto.ToListBillsResponse(bills, nextToken))
}

// statistics godoc
// @Summary Bill statistics of a week, month or year
// @Tags bills
// @Produce json
// @Param type query string false "expense or income"
// @Param timeRange query string true "week, month or year"
// @Param date query int false "Anchor in epoch milliseconds, defaults to now"
// @Success 200 {object} dto.Response{data=dto.BillStatisticsResponse}
// @Failure 400 {object} dto.Response
// @Security BearerAuth
// @Router /bills/statistics [get]
func (h *billHandler) statistics(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.BillStatisticsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	stats, err := h.billService.Statistics(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to compute bill statistics")
		return
	}
	respondOK(c, http.StatusOK, "ok", dto.ToBillStatisticsResponse(stats))
}

// currentBills godoc
// @Summary Bills of the current month or year
// @Tags bills
// @Produce json
// @Param range path string true "month or year"
// @Success 200 {object} dto.Response{data=[]dto.BillResponse}
// @Failure 400 {object} dto.Response
// @Security BearerAuth
// @Router /bills/current/{range} [get]
func (h *billHandler) currentBills(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	bills, err := h.billService.CurrentBills(c.Request.Context(), userID, c.Param("range"))
	if err != nil {
		respondError(c, err, "Failed to list current bills")
		return
	}
	respondOK(c, http.StatusOK, "ok", dto.ToListBillResponse(bills))
}

// getBill godoc
// @Summary Get a bill
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} dto.Response{data=dto.BillResponse}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /bills/{id} [get]
func (h *billHandler) getBill(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	bill, err := h.billService.GetBill(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get bill")
		return
	}
	respondOK(c, http.StatusOK, "ok", dto.ToBillResponse(bill))
}

// createBill godoc
// @Summary Record a bill
// @Description A bill with assetId moves that asset's balance in the same transaction
// @Tags bills
// @Accept json
// @Produce json
// @Param bill body dto.CreateBillRequest true "Bill, amount in minor units"
// @Success 201 {object} dto.Response{data=dto.BillResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response "Classify, tag or asset not found"
// @Security BearerAuth
// @Router /bills [post]
func (h *billHandler) createBill(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	bill, err := h.billService.CreateBill(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create bill")
		return
	}
	respondOK(c, http.StatusCreated, "bill created", dto.ToBillResponse(bill))
}

// updateBill godoc
// @Summary Update a bill
// @Description Reverses the previous effect on the linked asset and applies the new one
// @Tags bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param bill body dto.UpdateBillRequest true "Fields to change"
// @Success 200 {object} dto.Response{data=dto.BillResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /bills/{id} [put]
func (h *billHandler) updateBill(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	bill, err := h.billService.UpdateBill(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update bill")
		return
	}
	respondOK(c, http.StatusOK, "bill updated", dto.ToBillResponse(bill))
}

// deleteBill godoc
// @Summary Delete a bill
// @Tags bills
// @Param id path string true "Bill ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /bills/{id} [delete]
func (h *billHandler) deleteBill(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.billService.DeleteBill(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete bill")
		return
	}
	respondOK(c, http.StatusOK, "bill deleted", nil)
}
