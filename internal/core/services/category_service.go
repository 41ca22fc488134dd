package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wkaram/expense_tracker_app/internal/apperrors"
	"github.com/wkaram/expense_tracker_app/internal/core/domain"
	portssvc "github.com/wkaram/expense_tracker_app/internal/core/ports/services"
	"github.com/wkaram/expense_tracker_app/internal/dto"
)

// categoryService implements the CategorySvcFacade interface.
type categoryService struct {
	BaseService
	store *Store
}

// NewCategoryService creates the category and config manager.
func NewCategoryService(store *Store) portssvc.CategorySvcFacade {
	return &categoryService{store: store}
}

// Ensure categoryService implements the CategorySvcFacade interface
var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("category name cannot be empty: %w", apperrors.ErrValidation)
	}
	if req.AllowedPerMonth != nil && req.AllowedPerMonth.IsNegative() {
		return nil, fmt.Errorf("monthly allowance cannot be negative: %w", apperrors.ErrValidation)
	}

	category := domain.Category{
		CategoryID:      uuid.NewString(),
		Name:            name,
		AllowedPerMonth: req.AllowedPerMonth,
	}

	err := s.store.Update(ctx, func(data *domain.AppData) error {
		for _, existing := range data.Categories {
			if strings.EqualFold(existing.Name, name) {
				return fmt.Errorf("category %q already exists: %w", name, apperrors.ErrDuplicate)
			}
		}
		data.Categories = append(data.Categories, category)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	var updated domain.Category
	err := s.store.Update(ctx, func(data *domain.AppData) error {
		category := data.FindCategory(categoryID)
		if category == nil {
			return fmt.Errorf("category %q: %w", categoryID, apperrors.ErrNotFound)
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return fmt.Errorf("category name cannot be empty: %w", apperrors.ErrValidation)
			}
			category.Name = name
		}
		if req.ClearAllowance {
			category.AllowedPerMonth = nil
		} else if req.AllowedPerMonth != nil {
			if req.AllowedPerMonth.IsNegative() {
				return fmt.Errorf("monthly allowance cannot be negative: %w", apperrors.ErrValidation)
			}
			allowance := *req.AllowedPerMonth
			category.AllowedPerMonth = &allowance
		}
		updated = *category
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Category updated", slog.String("category_id", categoryID))
	return &updated, nil
}

// DeleteCategory removes a category and reassigns everything that referenced
// it to the reserved Misc category, which itself can never be deleted.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	if categoryID == domain.MiscCategoryID {
		return fmt.Errorf("the Misc category cannot be deleted: %w", apperrors.ErrValidation)
	}

	err := s.store.Update(ctx, func(data *domain.AppData) error {
		if data.FindCategory(categoryID) == nil {
			return fmt.Errorf("category %q: %w", categoryID, apperrors.ErrNotFound)
		}

		kept := data.Categories[:0]
		for _, c := range data.Categories {
			if c.CategoryID != categoryID {
				kept = append(kept, c)
			}
		}
		data.Categories = kept

		for i := range data.Expenses {
			if data.Expenses[i].CategoryID == categoryID {
				data.Expenses[i].CategoryID = domain.MiscCategoryID
			}
		}
		for i := range data.MonthlyExpenses {
			if data.MonthlyExpenses[i].CategoryID == categoryID {
				data.MonthlyExpenses[i].CategoryID = domain.MiscCategoryID
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Category deleted, references moved to misc", slog.String("category_id", categoryID))
	return nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	snapshot := s.store.Snapshot()
	return snapshot.Categories, nil
}

func (s *categoryService) GetConfig(ctx context.Context) (domain.AppConfig, error) {
	snapshot := s.store.Snapshot()
	return snapshot.Config, nil
}

func (s *categoryService) UpdateConversionRate(ctx context.Context, rate decimal.Decimal) (domain.AppConfig, error) {
	if !rate.IsPositive() {
		return domain.AppConfig{}, fmt.Errorf("conversion rate must be positive: %w", apperrors.ErrValidation)
	}

	var config domain.AppConfig
	err := s.store.Update(ctx, func(data *domain.AppData) error {
		data.Config.ConversionRate = rate
		config = data.Config
		return nil
	})
	if err != nil {
		return domain.AppConfig{}, err
	}

	s.LogInfo(ctx, "Conversion rate updated", slog.String("rate", rate.String()))
	return config, nil
}
