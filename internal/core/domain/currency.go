package domain

import (
	"github.com/shopspring/decimal"
)

// Currency is one of the two supported currency tokens.
type Currency string

const (
	// CurrencyUSD is the primary currency.
	CurrencyUSD Currency = "$"
	// CurrencyLBP is the secondary currency (Lebanese pound).
	CurrencyLBP Currency = "L.L."
)

// SupportedCurrencies lists every currency the application understands.
var SupportedCurrencies = []Currency{CurrencyUSD, CurrencyLBP}

// IsValid reports whether c is one of the supported currency tokens.
func (c Currency) IsValid() bool {
	return c == CurrencyUSD || c == CurrencyLBP
}

// Complement returns the other supported currency. Conversions always go
// from a currency to its complement; there is no third option.
func (c Currency) Complement() Currency {
	if c == CurrencyUSD {
		return CurrencyLBP
	}
	return CurrencyUSD
}

// ConvertAmount converts an amount between the two currencies at the given
// rate (units of L.L. per 1 $). Same-currency conversion returns the amount
// unchanged.
func ConvertAmount(amount decimal.Decimal, from, to Currency, rate decimal.Decimal) decimal.Decimal {
	if from == to {
		return amount
	}
	if to == CurrencyLBP {
		return amount.Mul(rate)
	}
	return amount.Div(rate)
}
