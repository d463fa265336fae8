package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pocket_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"
	"github.com/SscSPs/pocket_ledger/internal/dto"
	"github.com/SscSPs/pocket_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// assetHandler handles HTTP requests of the asset ledger.
type assetHandler struct {
	assetService portssvc.AssetSvcFacade
}

func newAssetHandler(as portssvc.AssetSvcFacade) *assetHandler {
	return &assetHandler{assetService: as}
}

func registerAssetRoutes(rg *gin.RouterGroup, assetService portssvc.AssetSvcFacade) {
	h := newAssetHandler(assetService)

	assets := rg.Group("/assets")
	{
		assets.GET("", h.listAssets)
		assets.POST("", h.createAsset)
		assets.POST("/transfer", h.transfer)
		assets.GET("/:id", h.getAsset)
		assets.PUT("/:id", h.updateAsset)
		assets.DELETE("/:id", h.deleteAsset)
	}
}

// listAssets godoc
// @Summary List assets
// @Description Lists the caller's active assets with positive, negative and net totals
// @Tags assets
// @Produce json
// @Param accountId query string false "Filter by account"
// @Param kind query string false "positive or negative"
// @Success 200 {object} dto.Response{data=dto.ListAssetsResponse}
// @Security BearerAuth
// @Router /assets [get]
func (h *assetHandler) listAssets(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.ListAssetsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	assets, summary, err := h.assetService.ListAssets(c.Request.Context(), userID, portsrepo.AssetFilter{
		AccountID: params.AccountID,
		Kind:      domain.AccountKind(params.Kind),
	})
	if err != nil {
		respondError(c, err, "Failed to list assets")
		return
	}
	respondOK(c, http.StatusOK, "ok", dto.ToListAssetsResponse(assets, summary))
}

// getAsset godoc
// @Summary Get an asset
// @Tags assets
// @Produce json
// @Param id path string true "Asset ID"
// @Success 200 {object} dto.Response{data=dto.AssetResponse}
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /assets/{id} [get]
func (h *assetHandler) getAsset(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	asset, err := h.assetService.GetAsset(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get asset")
		return
	}
	respondOK(c, http.StatusOK, "ok", dto.ToAssetResponse(asset))
}

// createAsset godoc
// @Summary Create an asset
// @Description Opens an asset in an active account and records its initial amount
// @Tags assets
// @Accept json
// @Produce json
// @Param asset body dto.CreateAssetRequest true "Asset details, amount in minor units"
// @Success 201 {object} dto.Response{data=dto.AssetResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response "Account not found"
// @Security BearerAuth
// @Router /assets [post]
func (h *assetHandler) createAsset(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create asset")
		return
	}
	respondOK(c, http.StatusCreated, "asset created", dto.ToAssetResponse(asset))
}

// updateAsset godoc
// @Summary Update an asset
// @Description Renames an asset, edits its remark or sets a new balance
// @Tags assets
// @Accept json
// @Produce json
// @Param id path string true "Asset ID"
// @Param asset body dto.UpdateAssetRequest true "Fields to change"
// @Success 200 {object} dto.Response{data=dto.AssetResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /assets/{id} [put]
func (h *assetHandler) updateAsset(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	asset, err := h.assetService.UpdateAsset(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update asset")
		return
	}
	respondOK(c, http.StatusOK, "asset updated", dto.ToAssetResponse(asset))
}

// deleteAsset godoc
// @Summary Delete an asset
// @Description Deactivates the asset and removes its change records
// @Tags assets
// @Param id path string true "Asset ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /assets/{id} [delete]
func (h *assetHandler) deleteAsset(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.assetService.DeleteAsset(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete asset")
		return
	}
	respondOK(c, http.StatusOK, "asset deleted", nil)
}

// transfer godoc
// @Summary Transfer between assets
// @Tags assets
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details, amount in minor units"
// @Success 200 {object} dto.Response{data=dto.TransferResponse}
// @Failure 400 {object} dto.Response "Validation error or insufficient funds"
// @Failure 404 {object} dto.Response
// @Security BearerAuth
// @Router /assets/transfer [post]
func (h *assetHandler) transfer(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.assetService.Transfer(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to transfer")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transfer completed",
		slog.String("from_asset_id", result.From.ID),
		slog.String("to_asset_id", result.To.ID))
	respondOK(c, http.StatusOK, "transfer completed", dto.ToTransferResponse(result))
}
