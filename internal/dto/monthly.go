package dto

import (
	"github.com/shopspring/decimal"

	"github.com/wkaram/expense_tracker_app/internal/core/domain"
)

// CreateMonthlyExpenseRequest defines a new recurring obligation template.
type CreateMonthlyExpenseRequest struct {
	Title      string          `json:"title" binding:"required"`
	Price      decimal.Decimal `json:"price" binding:"required"`
	Currency   domain.Currency `json:"currency" binding:"required,oneof=$ L.L."`
	CategoryID string          `json:"categoryId" binding:"required"`
}

// PayMonthlyExpenseRequest confirms payment of a template for the current
// month from a caller-chosen account.
type PayMonthlyExpenseRequest struct {
	AccountID string `json:"accountId" binding:"required"`
}

// MonthlyExpenseResponse mirrors domain.MonthlyExpense plus the paid state
// for the requested month.
type MonthlyExpenseResponse struct {
	MonthlyExpenseID string          `json:"id"`
	Title            string          `json:"title"`
	Price            string          `json:"price"`
	Currency         domain.Currency `json:"currency"`
	CategoryID       string          `json:"categoryId"`
	Paid             bool            `json:"paid"`
}

// ToMonthlyExpenseResponse converts a template plus its paid state for some
// month into the response DTO.
func ToMonthlyExpenseResponse(m *domain.MonthlyExpense, paid bool) MonthlyExpenseResponse {
	return MonthlyExpenseResponse{
		MonthlyExpenseID: m.MonthlyExpenseID,
		Title:            m.Title,
		Price:            m.Price.String(),
		Currency:         m.Currency,
		CategoryID:       m.CategoryID,
		Paid:             paid,
	}
}
