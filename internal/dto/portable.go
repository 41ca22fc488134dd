package dto

import (
	"github.com/shopspring/decimal"

	"github.com/wkaram/expense_tracker_app/internal/core/domain"
)

// PortableExpense is the denormalized expense shape of the portable file
// format: category and account references are carried as human-readable
// names. Fields are pointers so the import validator can distinguish a
// missing key from a zero value.
type PortableExpense struct {
	ID               *string          `json:"id" validate:"required"`
	Date             *string          `json:"date" validate:"required,datetime=2006-01-02"`
	Title            *string          `json:"title" validate:"required"`
	Price            *decimal.Decimal `json:"price" validate:"required"`
	Currency         *domain.Currency `json:"currency" validate:"required,oneof=$ L.L."`
	Category         *string          `json:"category" validate:"required"`
	IsMonthlyPayment *bool            `json:"isMonthlyPayment,omitempty"`
	// Account is carried for readability but never used to relink on import.
	Account *string `json:"account,omitempty"`
}

// PortableCategory mirrors domain.Category in the portable format.
type PortableCategory struct {
	ID              *string          `json:"id" validate:"required"`
	Name            *string          `json:"name" validate:"required"`
	AllowedPerMonth *decimal.Decimal `json:"allowedPerMonth"`
}

// PortableAccount mirrors domain.Account in the portable format.
type PortableAccount struct {
	ID                  *string                             `json:"id" validate:"required"`
	Name                *string                             `json:"name" validate:"required"`
	Balances            map[domain.Currency]decimal.Decimal `json:"balances"`
	SupportedCurrencies []domain.Currency                   `json:"supportedCurrencies" validate:"omitempty,dive,oneof=$ L.L."`
}

// PortableMonthlyExpense mirrors domain.MonthlyExpense in the portable format.
type PortableMonthlyExpense struct {
	ID         *string          `json:"id" validate:"required"`
	Title      *string          `json:"title" validate:"required"`
	Price      *decimal.Decimal `json:"price" validate:"required"`
	Currency   *domain.Currency `json:"currency" validate:"required,oneof=$ L.L."`
	CategoryID *string          `json:"categoryId" validate:"required"`
}

// PortableIncome mirrors domain.Income in the portable format. Internal
// income ids are regenerated on import.
type PortableIncome struct {
	ID        *string          `json:"id" validate:"required"`
	Title     *string          `json:"title,omitempty"`
	Amount    *decimal.Decimal `json:"amount" validate:"required"`
	Currency  *domain.Currency `json:"currency" validate:"required,oneof=$ L.L."`
	Date      *string          `json:"date" validate:"required,datetime=2006-01-02"`
	AccountID *string          `json:"accountId,omitempty"`
}

// PortableAppData is the import/export document. Only the expenses array is
// mandatory; the other sections are validated when present and fall back to
// the merge policy's defaults when absent.
type PortableAppData struct {
	Expenses        []PortableExpense        `json:"expenses"`
	Accounts        []PortableAccount        `json:"accounts,omitempty"`
	Categories      []PortableCategory       `json:"categories,omitempty"`
	MonthlyExpenses []PortableMonthlyExpense `json:"monthlyExpenses,omitempty"`
	Incomes         []PortableIncome         `json:"incomes,omitempty"`
}

// LegacyRecord is the flat record shape of the legacy export formats
// (JSON array, CSV, XLSX).
type LegacyRecord struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
	Category string `json:"category"`
}

// ImportValidationResponse summarizes a rejected import for the client.
type ImportValidationResponse struct {
	Error    string              `json:"error"`
	Sections map[string][]string `json:"sections"`
}
