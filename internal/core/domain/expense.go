package domain

import (
	"github.com/shopspring/decimal"
)

// Expense is a single recorded purchase, debited against an account balance
// at creation time. Immutable once created except via explicit edit; deleting
// an expense reverses its financial effect on its account/currency balance.
type Expense struct {
	ExpenseID        string          `json:"id"`
	Title            string          `json:"title"`
	Price            decimal.Decimal `json:"price"`
	Currency         Currency        `json:"currency"`
	CategoryID       string          `json:"categoryId"`
	Date             string          `json:"date"` // yyyy-mm-dd
	IsMonthlyPayment bool            `json:"isMonthlyPayment,omitempty"`
	MonthlyExpenseID string          `json:"monthlyExpenseId,omitempty"`
	AccountID        string          `json:"accountId"`
}
