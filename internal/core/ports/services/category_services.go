package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/wkaram/expense_tracker_app/internal/core/domain"
	"github.com/wkaram/expense_tracker_app/internal/dto"
)

// CategorySvcFacade manages the category set and the application config.
// The reserved Misc category is undeletable; deleting any other category
// reassigns its expenses and monthly templates to Misc.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
	ListCategories(ctx context.Context) ([]domain.Category, error)

	GetConfig(ctx context.Context) (domain.AppConfig, error)
	UpdateConversionRate(ctx context.Context, rate decimal.Decimal) (domain.AppConfig, error)
}
