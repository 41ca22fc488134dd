package services

import (
	"context"

	"github.com/wkaram/expense_tracker_app/internal/dto"
)

// ReportingSvcFacade derives read-only spending summaries from the ledger
// state. Amounts are converted to the primary currency at the configured
// rate before aggregation.
type ReportingSvcFacade interface {
	// MonthSummary breaks down a month's spending per category against each
	// category's allowance.
	MonthSummary(ctx context.Context, month string) (*dto.MonthSummaryResponse, error)
	// AvailableMonths lists the distinct months that have expenses, newest
	// first.
	AvailableMonths(ctx context.Context) ([]string, error)
}
