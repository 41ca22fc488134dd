package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wkaram/expense_tracker_app/internal/apperrors"
	"github.com/wkaram/expense_tracker_app/internal/core/domain"
	portssvc "github.com/wkaram/expense_tracker_app/internal/core/ports/services"
	"github.com/wkaram/expense_tracker_app/internal/dto"
	"github.com/wkaram/expense_tracker_app/internal/utils"
)

// reportingService implements the ReportingSvcFacade interface.
type reportingService struct {
	BaseService
	store *Store
}

// NewReportingService creates the read-only summary provider.
func NewReportingService(store *Store) portssvc.ReportingSvcFacade {
	return &reportingService{store: store}
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// MonthSummary aggregates a month's spending per category. Amounts in the
// secondary currency are converted to the primary one at the configured
// rate, so totals are always comparable across currencies.
func (s *reportingService) MonthSummary(ctx context.Context, month string) (*dto.MonthSummaryResponse, error) {
	if _, err := time.Parse(utils.MonthLayout, month); err != nil {
		return nil, fmt.Errorf("month must be yyyy-mm: %w", apperrors.ErrValidation)
	}

	snapshot := s.store.Snapshot()
	rate := snapshot.Config.ConversionRate

	consumed := make(map[string]decimal.Decimal, len(snapshot.Categories))
	total := decimal.Zero
	for _, expense := range snapshot.Expenses {
		if utils.MonthKeyOfDate(expense.Date) != month {
			continue
		}
		inPrimary := domain.ConvertAmount(expense.Price, expense.Currency, domain.CurrencyUSD, rate)
		consumed[expense.CategoryID] = consumed[expense.CategoryID].Add(inPrimary)
		total = total.Add(inPrimary)
	}

	// Every category appears in the breakdown, spent against or not.
	categories := make([]dto.CategorySummary, 0, len(snapshot.Categories))
	for _, category := range snapshot.Categories {
		summary := dto.CategorySummary{
			CategoryID: category.CategoryID,
			Name:       category.Name,
			Consumed:   utils.FormatAmount(consumed[category.CategoryID], domain.CurrencyUSD),
		}
		if category.AllowedPerMonth != nil {
			allowed := utils.FormatAmount(*category.AllowedPerMonth, domain.CurrencyUSD)
			summary.Allowed = &allowed
		}
		categories = append(categories, summary)
	}

	return &dto.MonthSummaryResponse{
		Month:      month,
		Total:      utils.FormatAmount(total, domain.CurrencyUSD),
		Categories: categories,
	}, nil
}

func (s *reportingService) AvailableMonths(ctx context.Context) ([]string, error) {
	snapshot := s.store.Snapshot()

	seen := make(map[string]struct{})
	months := make([]string, 0)
	for _, expense := range snapshot.Expenses {
		month := utils.MonthKeyOfDate(expense.Date)
		if _, ok := seen[month]; ok {
			continue
		}
		seen[month] = struct{}{}
		months = append(months, month)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months, nil
}
