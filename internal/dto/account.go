package dto

import (
	"github.com/shopspring/decimal"

	"github.com/wkaram/expense_tracker_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name                string            `json:"name" binding:"required"`
	SupportedCurrencies []domain.Currency `json:"supportedCurrencies" binding:"required,min=1,dive,oneof=$ L.L."`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name                *string           `json:"name"`
	SupportedCurrencies []domain.Currency `json:"supportedCurrencies" binding:"omitempty,min=1,dive,oneof=$ L.L."`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID           string                     `json:"id"`
	Name                string                     `json:"name"`
	Balances            map[domain.Currency]string `json:"balances"`
	SupportedCurrencies []domain.Currency          `json:"supportedCurrencies"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	balances := make(map[domain.Currency]string, len(acc.Balances))
	for currency, amount := range acc.Balances {
		balances[currency] = amount.String()
	}
	return AccountResponse{
		AccountID:           acc.AccountID,
		Name:                acc.Name,
		Balances:            balances,
		SupportedCurrencies: acc.SupportedCurrencies,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// TransferRequest moves an amount between two accounts in one currency.
type TransferRequest struct {
	FromAccountID string          `json:"fromAccountId" binding:"required"`
	ToAccountID   string          `json:"toAccountId" binding:"required"`
	Currency      domain.Currency `json:"currency" binding:"required,oneof=$ L.L."`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

// ConvertRequest converts a quantity of the source currency into its
// complement, debiting the source account and crediting the destination.
// Source and destination may be the same account.
type ConvertRequest struct {
	SourceAccountID      string          `json:"sourceAccountId" binding:"required"`
	DestinationAccountID string          `json:"destinationAccountId" binding:"required"`
	SourceCurrency       domain.Currency `json:"sourceCurrency" binding:"required,oneof=$ L.L."`
	Quantity             decimal.Decimal `json:"quantity" binding:"required"`
	// Rate overrides the configured conversion rate for this operation only.
	Rate *decimal.Decimal `json:"rate"`
}
