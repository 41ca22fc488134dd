package dto

import (
	"github.com/shopspring/decimal"

	"github.com/wkaram/expense_tracker_app/internal/core/domain"
)

// AddIncomeRequest credits an amount to an account and records the income
// event for audit.
type AddIncomeRequest struct {
	AccountID string          `json:"accountId" binding:"required"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Currency  domain.Currency `json:"currency" binding:"required,oneof=$ L.L."`
}

// IncomeResponse mirrors domain.Income.
type IncomeResponse struct {
	IncomeID  string          `json:"id"`
	Title     string          `json:"title,omitempty"`
	Amount    string          `json:"amount"`
	Currency  domain.Currency `json:"currency"`
	Date      string          `json:"date"`
	AccountID string          `json:"accountId"`
}

// ToIncomeResponse converts a domain.Income to its response DTO.
func ToIncomeResponse(in *domain.Income) IncomeResponse {
	return IncomeResponse{
		IncomeID:  in.IncomeID,
		Title:     in.Title,
		Amount:    in.Amount.String(),
		Currency:  in.Currency,
		Date:      in.Date,
		AccountID: in.AccountID,
	}
}

// ToListIncomeResponse converts a slice of domain.Income to response DTOs.
func ToListIncomeResponse(incomes []domain.Income) []IncomeResponse {
	res := make([]IncomeResponse, len(incomes))
	for i := range incomes {
		res[i] = ToIncomeResponse(&incomes[i])
	}
	return res
}
