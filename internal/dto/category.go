package dto

import (
	"github.com/shopspring/decimal"

	"github.com/wkaram/expense_tracker_app/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a new category.
// A nil AllowedPerMonth means no monthly limit.
type CreateCategoryRequest struct {
	Name            string           `json:"name" binding:"required"`
	AllowedPerMonth *decimal.Decimal `json:"allowedPerMonth"`
}

// UpdateCategoryRequest defines the fields a category edit may change.
// ClearAllowance removes the monthly limit when true.
type UpdateCategoryRequest struct {
	Name            *string          `json:"name"`
	AllowedPerMonth *decimal.Decimal `json:"allowedPerMonth"`
	ClearAllowance  bool             `json:"clearAllowance"`
}

// CategoryResponse mirrors domain.Category.
type CategoryResponse struct {
	CategoryID      string  `json:"id"`
	Name            string  `json:"name"`
	AllowedPerMonth *string `json:"allowedPerMonth"`
}

// ToCategoryResponse converts a domain.Category to its response DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	resp := CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
	}
	if c.AllowedPerMonth != nil {
		allowed := c.AllowedPerMonth.String()
		resp.AllowedPerMonth = &allowed
	}
	return resp
}

// ToListCategoryResponse converts a slice of domain.Category to response DTOs.
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}

// UpdateConversionRateRequest changes the configured L.L. per $ rate.
type UpdateConversionRateRequest struct {
	ConversionRate decimal.Decimal `json:"conversionRate" binding:"required"`
}

// ConfigResponse mirrors domain.AppConfig.
type ConfigResponse struct {
	ConversionRate string `json:"conversionRate"`
}
