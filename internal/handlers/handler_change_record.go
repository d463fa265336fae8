package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type changeRecordHandler struct {
	changeRecordService portssvc.ChangeRecordSvc
}

func newChangeRecordHandler(svc portssvc.ChangeRecordSvc) *changeRecordHandler {
	return &changeRecordHandler{changeRecordService: svc}
}

func registerChangeRecordRoutes(rg *gin.RouterGroup, svc portssvc.ChangeRecordSvc) {
	h := newChangeRecordHandler(svc)

	records := rg.Group("/change-records")
	{
		records.GET("", h.listByMonth)
		records.POST("/notes", h.addNote)
		records.GET("/:id", h.getChangeRecord)
	}
}

// listByMonth godoc
// @Summary List an asset's change records for a month
// @Description Records are grouped by day, most recent first
// @Tags change-records
// @Produce json
// @Param assetId query string true "Asset ID"
// @Param month query string true "Month as YYYY-MM"
// @Success 200 {object} dto.Response{data=[]dto.ChangeRecordGroupResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /change-records [get]
func (h *changeRecordHandler) listByMonth(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListChangeRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	days, err := h.changeRecordService.ListByAssetAndMonth(c.Request.Context(), userID, params.AssetID, params.Month)
	if err != nil {
		respondError(c, err, "Failed to list change records")
		return
	}
	respondOK(c, http.StatusOK, "ok", dto.ToChangeRecordGroupsResponse(days))
}

// getChangeRecord godoc
// @Summary Get a change record
// @Tags change-records
// @Produce json
// @Param id path string true "Change record ID"
// @Success 200 {object} dto.Response{data=dto.ChangeRecordResponse}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /change-records/{id} [get]
func (h *changeRecordHandler) getChangeRecord(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	record, err := h.changeRecordService.GetChangeRecord(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get change record")
		return
	}
	respondOK(c, http.StatusOK, "ok", dto.ToChangeRecordResponse(record))
}

// addNote godoc
// @Summary Annotate an asset
// @Description Appends a zero-delta record carrying only a remark
// @Tags change-records
// @Accept json
// @Produce json
// @Param note body dto.AddNoteRequest true "Note"
// @Success 201 {object} dto.Response{data=dto.ChangeRecordResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /change-records/notes [post]
func (h *changeRecordHandler) addNote(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	record, err := h.changeRecordService.AddNote(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to add note")
		return
	}
	respondOK(c, http.StatusCreated, "note added", dto.ToChangeRecordResponse(record))
}
