package dto

import (
	"github.com/shopspring/decimal"

	"github.com/wkaram/expense_tracker_app/internal/core/domain"
)

// CreateExpenseRequest defines the data needed to record a new expense
// against an account.
type CreateExpenseRequest struct {
	Title      string          `json:"title" binding:"required"`
	Price      decimal.Decimal `json:"price" binding:"required"`
	Currency   domain.Currency `json:"currency" binding:"required,oneof=$ L.L."`
	CategoryID string          `json:"categoryId" binding:"required"`
	Date       string          `json:"date" binding:"required"`
	AccountID  string          `json:"accountId" binding:"required"`
}

// UpdateExpenseRequest defines the fields an explicit expense edit may
// change. Account and monthly-payment linkage are not editable.
type UpdateExpenseRequest struct {
	Title      *string          `json:"title"`
	Price      *decimal.Decimal `json:"price"`
	Currency   *domain.Currency `json:"currency" binding:"omitempty,oneof=$ L.L."`
	CategoryID *string          `json:"categoryId"`
	Date       *string          `json:"date"`
}

// ExpenseResponse mirrors domain.Expense with the price rendered as a string.
type ExpenseResponse struct {
	ExpenseID        string          `json:"id"`
	Title            string          `json:"title"`
	Price            string          `json:"price"`
	Currency         domain.Currency `json:"currency"`
	CategoryID       string          `json:"categoryId"`
	Date             string          `json:"date"`
	IsMonthlyPayment bool            `json:"isMonthlyPayment"`
	MonthlyExpenseID string          `json:"monthlyExpenseId,omitempty"`
	AccountID        string          `json:"accountId"`
}

// ToExpenseResponse converts a domain.Expense to its response DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:        e.ExpenseID,
		Title:            e.Title,
		Price:            e.Price.String(),
		Currency:         e.Currency,
		CategoryID:       e.CategoryID,
		Date:             e.Date,
		IsMonthlyPayment: e.IsMonthlyPayment,
		MonthlyExpenseID: e.MonthlyExpenseID,
		AccountID:        e.AccountID,
	}
}

// ToListExpenseResponse converts a slice of domain.Expense to response DTOs.
func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return res
}

// ListExpensesParams defines the query filters for listing expenses.
type ListExpensesParams struct {
	Month      string `form:"month"`
	CategoryID string `form:"categoryId"`
	Search     string `form:"search"`
}
