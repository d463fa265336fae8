package dto

import (
	"time"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
)

// AddNoteRequest appends a remark-only record to an asset's trail.
type AddNoteRequest struct {
	AssetID string `json:"assetId" binding:"required"`
	Remark  string `json:"remark" binding:"required,max=255"`
}

// ListChangeRecordsParams selects one asset's records for a month.
type ListChangeRecordsParams struct {
	AssetID string `form:"assetId" binding:"required"`
	Month   string `form:"month" binding:"required,month"`
}

// ChangeRecordResponse defines the data returned for a change record.
type ChangeRecordResponse struct {
	ID           string            `json:"id"`
	AssetID      string            `json:"assetId"`
	Delta        domain.Money      `json:"delta"`
	DeltaDisplay string            `json:"deltaDisplay"`
	Kind         domain.ChangeKind `json:"kind"`
	KindName     string            `json:"kindName"`
	Remark       string            `json:"remark"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// ChangeRecordGroupResponse is one day of records.
type ChangeRecordGroupResponse struct {
	Title string                 `json:"title"`
	Data  []ChangeRecordResponse `json:"data"`
}

func ToChangeRecordResponse(r *domain.ChangeRecord) ChangeRecordResponse {
	return ChangeRecordResponse{
		ID:           r.ID,
		AssetID:      r.AssetID,
		Delta:        r.Delta,
		DeltaDisplay: r.Delta.String(),
		Kind:         r.Kind,
		KindName:     r.Kind.String(),
		Remark:       r.Remark,
		CreatedAt:    r.CreatedAt,
	}
}

func ToChangeRecordGroupsResponse(days []domain.ChangeRecordDay) []ChangeRecordGroupResponse {
	res := make([]ChangeRecordGroupResponse, len(days))
	for i, day := range days {
		data := make([]ChangeRecordResponse, len(day.Records))
		for j := range day.Records {
			data[j] = ToChangeRecordResponse(&day.Records[j])
		}
		res[i] = ChangeRecordGroupResponse{Title: day.Title, Data: data}
	}
	return res
}
