package dto

import (
	"time"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
)

// CreateAssetAccountRequest defines the data needed to register an asset account.
type CreateAssetAccountRequest struct {
	Name     string             `json:"name" binding:"required,max=100"`
	Kind     domain.AccountKind `json:"kind" binding:"required,oneof=positive negative"`
	ParentID *string            `json:"parentId"`
}

// AssetAccountResponse defines the data returned for an asset account.
type AssetAccountResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Kind      domain.AccountKind `json:"kind"`
	ParentID  *string            `json:"parentId,omitempty"`
	IsActive  bool               `json:"isActive"`
	CreatedAt time.Time          `json:"createdAt"`
}

func ToAssetAccountResponse(a *domain.AssetAccount) AssetAccountResponse {
	return AssetAccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Kind:      a.Kind,
		ParentID:  a.ParentID,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

func ToListAssetAccountResponse(accounts []domain.AssetAccount) []AssetAccountResponse {
	res := make([]AssetAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAssetAccountResponse(&accounts[i])
	}
	return res
}
