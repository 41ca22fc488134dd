package services

import (
	"context"

	"github.com/wkaram/expense_tracker_app/internal/core/domain"
	"github.com/wkaram/expense_tracker_app/internal/dto"
)

// MonthlyPaymentSvcFacade manages recurring obligation templates and the
// per-month payment status log. Paid-ness for a month is a lookup of the
// (template, month) pair in the log, never a stored flag.
type MonthlyPaymentSvcFacade interface {
	CreateMonthlyExpense(ctx context.Context, req dto.CreateMonthlyExpenseRequest) (*domain.MonthlyExpense, error)
	DeleteMonthlyExpense(ctx context.Context, monthlyExpenseID string) error
	// ListMonthlyExpenses returns every template with its paid state for the
	// given YYYY-MM month (the current month when empty).
	ListMonthlyExpenses(ctx context.Context, month string) ([]dto.MonthlyExpenseResponse, error)
	// PayMonthlyExpense transitions a template from Unpaid to Paid for the
	// current month: it records a concrete expense against the chosen
	// account and appends a status. Paying an already-paid template is a
	// no-op and returns the existing paid state without error.
	PayMonthlyExpense(ctx context.Context, monthlyExpenseID string, req dto.PayMonthlyExpenseRequest) (*domain.Expense, error)
}
