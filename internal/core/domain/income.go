package domain

import (
	"github.com/shopspring/decimal"
)

// Income is a credit event against an account, recorded for audit. The
// ledger applies the credit at creation time; the record itself is not
// re-applied on load.
type Income struct {
	IncomeID  string          `json:"id"`
	Title     string          `json:"title,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  Currency        `json:"currency"`
	Date      string          `json:"date"` // yyyy-mm-dd
	AccountID string          `json:"accountId"`
}
