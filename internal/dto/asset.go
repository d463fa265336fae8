package dto

import (
	"time"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
)

// CreateAssetRequest defines the data needed to open an asset.
// Amount is in minor units. Kind is optional and must match the account kind when given.
type CreateAssetRequest struct {
	AccountID string             `json:"accountId" binding:"required"`
	Name      string             `json:"name" binding:"required,max=100"`
	Amount    domain.Money       `json:"amount" binding:"gte=0"`
	Kind      domain.AccountKind `json:"kind" binding:"omitempty,oneof=positive negative"`
	Remark    string             `json:"remark" binding:"max=255"`
}

// UpdateAssetRequest defines the editable fields of an asset.
// Pointers distinguish absent fields from zero values.
type UpdateAssetRequest struct {
	Name   *string       `json:"name" binding:"omitempty,max=100"`
	Amount *domain.Money `json:"amount" binding:"omitempty,gte=0"`
	Remark *string       `json:"remark" binding:"omitempty,max=255"`
}

// TransferRequest moves funds between two assets of the caller.
// CreatedAt is epoch milliseconds and defaults to now.
type TransferRequest struct {
	FromAssetID string       `json:"fromAssetId" binding:"required"`
	ToAssetID   string       `json:"toAssetId" binding:"required,nefield=FromAssetID"`
	Amount      domain.Money `json:"amount" binding:"gt=0"`
	Remark      string       `json:"remark" binding:"max=255"`
	CreatedAt   *int64       `json:"createdAt"`
}

// ListAssetsParams defines query parameters for listing assets.
type ListAssetsParams struct {
	AccountID string `form:"accountId"`
	Kind      string `form:"kind" binding:"omitempty,oneof=positive negative"`
}

// AssetResponse defines the data returned for an asset. Amount is in minor units,
// AmountDisplay in major units with trailing zeros trimmed.
type AssetResponse struct {
	ID            string             `json:"id"`
	AccountID     string             `json:"accountId"`
	Name          string             `json:"name"`
	Amount        domain.Money       `json:"amount"`
	AmountDisplay string             `json:"amountDisplay"`
	Kind          domain.AccountKind `json:"kind"`
	Remark        string             `json:"remark"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// ListAssetsResponse carries assets with their polarity totals.
type ListAssetsResponse struct {
	Assets  []AssetResponse     `json:"assets"`
	Summary domain.AssetSummary `json:"summary"`
}

// TransferResponse returns both sides of a completed transfer.
type TransferResponse struct {
	From AssetResponse        `json:"from"`
	To   AssetResponse        `json:"to"`
	Out  ChangeRecordResponse `json:"out"`
	In   ChangeRecordResponse `json:"in"`
}

func ToAssetResponse(a *domain.Asset) AssetResponse {
	return AssetResponse{
		ID:            a.ID,
		AccountID:     a.AccountID,
		Name:          a.Name,
		Amount:        a.Amount,
		AmountDisplay: a.Amount.String(),
		Kind:          a.Kind,
		Remark:        a.Remark,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func ToListAssetsResponse(assets []domain.Asset, summary domain.AssetSummary) ListAssetsResponse {
	res := ListAssetsResponse{Assets: make([]AssetResponse, len(assets)), Summary: summary}
	for i := range assets {
		res.Assets[i] = ToAssetResponse(&assets[i])
	}
	return res
}

func ToTransferResponse(t *domain.TransferResult) TransferResponse {
	return TransferResponse{
		From: ToAssetResponse(&t.From),
		To:   ToAssetResponse(&t.To),
		Out:  ToChangeRecordResponse(&t.OutRecord),
		In:   ToChangeRecordResponse(&t.InRecord),
	}
}
