package dto

import "github.com/SscSPs/pocket_ledger/internal/core/domain"

// CreateBillRequest defines the data needed to record a bill.
// Date is epoch milliseconds; AssetID links the bill to a balance.
type CreateBillRequest struct {
	Type       domain.BillType `json:"type" binding:"required,oneof=expense income"`
	Amount     domain.Money    `json:"amount" binding:"gt=0"`
	Date       int64           `json:"date" binding:"required,gt=0"`
	ClassifyID string          `json:"classifyId" binding:"required"`
	AssetID    *string         `json:"assetId"`
	TagID      *string         `json:"tagId"`
	Remark     string          `json:"remark" binding:"max=255"`
	Images     []string        `json:"images" binding:"max=9,dive,url"`
}

// UpdateBillRequest defines the editable fields of a bill. ClearAsset unlinks the asset.
type UpdateBillRequest struct {
	Type       *domain.BillType `json:"type" binding:"omitempty,oneof=expense income"`
	Amount     *domain.Money    `json:"amount" binding:"omitempty,gt=0"`
	Date       *int64           `json:"date" binding:"omitempty,gt=0"`
	ClassifyID *string          `json:"classifyId"`
	AssetID    *string          `json:"assetId"`
	ClearAsset bool             `json:"clearAsset"`
	TagID      *string          `json:"tagId"`
	Remark     *string          `json:"remark" binding:"omitempty,max=255"`
	Images     []string         `json:"images" binding:"omitempty,max=9,dive,url"`
}

// ListBillsParams defines query parameters for listing bills.
type ListBillsParams struct {
	Type      string `form:"type" binding:"omitempty,oneof=expense income"`
	StartDate int64  `form:"startDate" binding:"omitempty,gte=0"`
	EndDate   int64  `form:"endDate" binding:"omitempty,gte=0"`
	Keyword   string `form:"keyword"`
	Limit     int    `form:"limit" binding:"omitempty,gte=1,lte=200"`
	NextToken string `form:"nextToken"`
}

// ListBillsResponse is one page of bills. NextToken is set while more pages remain.
type ListBillsResponse struct {
	Bills     []BillResponse `json:"bills"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// BillStatisticsParams selects the statistics window.
type BillStatisticsParams struct {
	Type      string `form:"type" binding:"omitempty,oneof=expense income"`
	TimeRange string `form:"timeRange" binding:"required,oneof=week month year"`
	Date      int64  `form:"date" binding:"omitempty,gte=0"`
}

// BillResponse defines the data returned for a bill.
type BillResponse struct {
	ID            string          `json:"id"`
	Type          domain.BillType `json:"type"`
	Amount        domain.Money    `json:"amount"`
	AmountDisplay string          `json:"amountDisplay"`
	Date          int64           `json:"date"`
	ClassifyID    string          `json:"classifyId"`
	AssetID       *string         `json:"assetId,omitempty"`
	TagID         *string         `json:"tagId,omitempty"`
	Remark        string          `json:"remark"`
	Images        []string        `json:"images"`
}

// BillStatisticsResponse defines the summary view of a time range.
type BillStatisticsResponse struct {
	Range   string                 `json:"range"`
	Start   int64                  `json:"start"`
	End     int64                  `json:"end"`
	Summary domain.BillSummary     `json:"summary"`
	Daily   []domain.DailyBillStat `json:"daily"`
	Bills   []BillResponse         `json:"bills"`
}

func ToBillResponse(b *domain.Bill) BillResponse {
	images := b.Images
	if images == nil {
		images = []string{}
	}
	return BillResponse{
		ID:            b.ID,
		Type:          b.Type,
		Amount:        b.Amount,
		AmountDisplay: b.Amount.String(),
		Date:          b.Date,
		ClassifyID:    b.ClassifyID,
		AssetID:       b.AssetID,
		TagID:         b.TagID,
		Remark:        b.Remark,
		Images:        images,
	}
}

func ToListBillResponse(bills []domain.Bill) []BillResponse {
	res := make([]BillResponse, len(bills))
	for i := range bills {
		res[i] = ToBillResponse(&bills[i])
	}
	return res
}

func ToListBillsResponse(bills []domain.Bill, nextToken *string) ListBillsResponse {
	return ListBillsResponse{Bills: ToListBillResponse(bills), NextToken: nextToken}
}

func ToBillStatisticsResponse(s *domain.BillStatistics) BillStatisticsResponse {
	return BillStatisticsResponse{
		Range:   s.Range,
		Start:   s.Start,
		End:     s.End,
		Summary: s.Summary,
		Daily:   s.Daily,
		Bills:   ToListBillResponse(s.Bills),
	}
}
