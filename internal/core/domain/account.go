package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a named balance-holding entity scoped to a subset of the
// supported currencies. Every currency in SupportedCurrencies has a
// corresponding (possibly zero) entry in Balances; balances for unsupported
// currencies are absent.
type Account struct {
	AccountID           string                       `json:"id"`
	Name                string                       `json:"name"`
	Balances            map[Currency]decimal.Decimal `json:"balances"`
	SupportedCurrencies []Currency                   `json:"supportedCurrencies"`
}

// SupportsCurrency reports whether the account holds balances in the given
// currency.
func (a *Account) SupportsCurrency(currency Currency) bool {
	for _, c := range a.SupportedCurrencies {
		if c == currency {
			return true
		}
	}
	return false
}

// BalanceFor returns the account's balance in the given currency, or zero if
// no entry exists yet.
func (a *Account) BalanceFor(currency Currency) decimal.Decimal {
	if a.Balances == nil {
		return decimal.Zero
	}
	return a.Balances[currency]
}

// EnsureBalances back-fills a zero balance entry for every supported currency
// and drops entries for currencies the account no longer supports.
func (a *Account) EnsureBalances() {
	balances := make(map[Currency]decimal.Decimal, len(a.SupportedCurrencies))
	for _, c := range a.SupportedCurrencies {
		if a.Balances != nil {
			balances[c] = a.Balances[c]
		} else {
			balances[c] = decimal.Zero
		}
	}
	a.Balances = balances
}
