package domain

import (
	"github.com/shopspring/decimal"
)

// MonthlyExpense is a recurring obligation definition. No account is bound
// until payment time, when a concrete Expense is materialized against a
// caller-chosen account.
type MonthlyExpense struct {
	MonthlyExpenseID string          `json:"id"`
	Title            string          `json:"title"`
	Price            decimal.Decimal `json:"price"`
	Currency         Currency        `json:"currency"`
	CategoryID       string          `json:"categoryId"`
}

// MonthlyPaymentStatus marks a monthly template as paid for one month.
// Existence of a record for a (template, month) pair means "already paid";
// at most one status exists per template per month.
type MonthlyPaymentStatus struct {
	MonthlyExpenseID string `json:"monthlyExpenseId"`
	Month            string `json:"month"` // YYYY-MM
	ExpenseID        string `json:"expenseId"`
}
