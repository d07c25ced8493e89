package dto

import (
	"github.com/SscSPs/biz_finance_tracker/internal/core/domain"
)

// CreateLookupValueRequest adds an expense type or status.
type CreateLookupValueRequest struct {
	Code     string `json:"code" binding:"required,max=64"`
	Name     string `json:"name" binding:"required,max=255"`
	IsActive *bool  `json:"isActive"`
}

// UpdateLookupValueRequest changes the display name or active flag of a lookup value.
type UpdateLookupValueRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	IsActive *bool   `json:"isActive"`
}

// LookupValueResponse is returned for expense types and statuses.
type LookupValueResponse struct {
	Kind     string `json:"kind"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}

func ToLookupValueResponse(v *domain.LookupValue) LookupValueResponse {
	return LookupValueResponse{Kind: string(v.Kind), Code: v.Code, Name: v.Name, IsActive: v.IsActive}
}

func ToListLookupValueResponse(values []domain.LookupValue) []LookupValueResponse {
	res := make([]LookupValueResponse, len(values))
	for i := range values {
		res[i] = ToLookupValueResponse(&values[i])
	}
	return res
}
