package utils

import (
	"github.com/shopspring/decimal"

	"github.com/wkaram/expense_tracker_app/internal/core/domain"
)

// FormatAmount formats an amount for user-facing messages with the display
// convention of its currency: dollars carry the symbol as a prefix with two
// decimals, pounds are rounded to whole units with a suffix.
// Example: 12.345 USD returns "$12.35"; 890000 LBP returns "890000 L.L.".
func FormatAmount(amount decimal.Decimal, currency domain.Currency) string {
	if currency == domain.CurrencyUSD {
		return "$" + amount.StringFixed(2)
	}
	return amount.Round(0).String() + " L.L."
}
