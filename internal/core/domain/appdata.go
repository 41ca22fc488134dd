package domain

import (
	"github.com/shopspring/decimal"
)

// AppConfig holds user-tunable application settings.
type AppConfig struct {
	// ConversionRate is the number of L.L. per 1 $.
	ConversionRate decimal.Decimal `json:"conversionRate"`
}

// AppData is the aggregate root: the entire persisted application state. It
// is loaded from a single document at startup, mutated in memory by every
// operation, and fully re-serialized after each mutation.
type AppData struct {
	Expenses               []Expense              `json:"expenses"`
	Categories             []Category             `json:"categories"`
	Accounts               []Account              `json:"accounts"`
	MonthlyExpenses        []MonthlyExpense       `json:"monthlyExpenses"`
	MonthlyPaymentStatuses []MonthlyPaymentStatus `json:"monthlyPaymentStatuses"`
	Incomes                []Income               `json:"incomes"`
	Config                 AppConfig              `json:"config"`
}

// DefaultConversionRate is the fallback L.L. per $ rate for fresh documents.
var DefaultConversionRate = decimal.NewFromInt(89000)

// DefaultCategories returns the category set of a fresh document: just the
// reserved Misc fallback with no allowance.
func DefaultCategories() []Category {
	return []Category{
		{CategoryID: MiscCategoryID, Name: "Misc", AllowedPerMonth: nil},
	}
}

// DefaultAccounts returns the two system default accounts, each supporting
// both currencies at zero balance.
func DefaultAccounts() []Account {
	accounts := []Account{
		{AccountID: "cash", Name: "Cash", SupportedCurrencies: []Currency{CurrencyUSD, CurrencyLBP}},
		{AccountID: "bank", Name: "Bank Account", SupportedCurrencies: []Currency{CurrencyUSD, CurrencyLBP}},
	}
	for i := range accounts {
		accounts[i].EnsureBalances()
	}
	return accounts
}

// DefaultAppData returns the document used when nothing has been persisted
// yet, or when the persisted blob cannot be parsed.
func DefaultAppData() AppData {
	return AppData{
		Expenses:               []Expense{},
		Categories:             DefaultCategories(),
		Accounts:               DefaultAccounts(),
		MonthlyExpenses:        []MonthlyExpense{},
		MonthlyPaymentStatuses: []MonthlyPaymentStatus{},
		Incomes:                []Income{},
		Config:                 AppConfig{ConversionRate: DefaultConversionRate},
	}
}

// NormalizeAppData produces a fully-populated document from a possibly
// partial one: empty or missing collections fall back to defaults, account
// balances are back-filled for every supported currency, and a non-positive
// conversion rate is replaced by the default. Pure: the input is not
// modified.
func NormalizeAppData(raw AppData) AppData {
	data := AppData{
		Expenses:               append([]Expense{}, raw.Expenses...),
		Categories:             append([]Category{}, raw.Categories...),
		MonthlyExpenses:        append([]MonthlyExpense{}, raw.MonthlyExpenses...),
		MonthlyPaymentStatuses: append([]MonthlyPaymentStatus{}, raw.MonthlyPaymentStatuses...),
		Incomes:                append([]Income{}, raw.Incomes...),
		Config:                 raw.Config,
	}

	data.Accounts = make([]Account, len(raw.Accounts))
	for i, account := range raw.Accounts {
		normalized := account
		if len(normalized.SupportedCurrencies) == 0 {
			normalized.SupportedCurrencies = []Currency{CurrencyUSD, CurrencyLBP}
		}
		normalized.EnsureBalances()
		data.Accounts[i] = normalized
	}
	if len(data.Accounts) == 0 {
		data.Accounts = DefaultAccounts()
	}

	if len(data.Categories) == 0 {
		data.Categories = DefaultCategories()
	}
	if !data.Config.ConversionRate.IsPositive() {
		data.Config.ConversionRate = DefaultConversionRate
	}
	return data
}

// FindAccount returns a pointer into the Accounts slice for the given id, or
// nil when absent.
func (d *AppData) FindAccount(accountID string) *Account {
	for i := range d.Accounts {
		if d.Accounts[i].AccountID == accountID {
			return &d.Accounts[i]
		}
	}
	return nil
}

// FindCategory returns a pointer into the Categories slice for the given id,
// or nil when absent.
func (d *AppData) FindCategory(categoryID string) *Category {
	for i := range d.Categories {
		if d.Categories[i].CategoryID == categoryID {
			return &d.Categories[i]
		}
	}
	return nil
}

// FindExpense returns a pointer into the Expenses slice for the given id, or
// nil when absent.
func (d *AppData) FindExpense(expenseID string) *Expense {
	for i := range d.Expenses {
		if d.Expenses[i].ExpenseID == expenseID {
			return &d.Expenses[i]
		}
	}
	return nil
}

// FindMonthlyExpense returns a pointer into the MonthlyExpenses slice for the
// given id, or nil when absent.
func (d *AppData) FindMonthlyExpense(monthlyExpenseID string) *MonthlyExpense {
	for i := range d.MonthlyExpenses {
		if d.MonthlyExpenses[i].MonthlyExpenseID == monthlyExpenseID {
			return &d.MonthlyExpenses[i]
		}
	}
	return nil
}

// IsPaidForMonth reports whether the given monthly template has a payment
// status recorded for the given YYYY-MM month key.
func (d *AppData) IsPaidForMonth(monthlyExpenseID, month string) bool {
	for _, status := range d.MonthlyPaymentStatuses {
		if status.MonthlyExpenseID == monthlyExpenseID && status.Month == month {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the document. Account balance maps are the
// only reference values besides the slices themselves.
func (d *AppData) Clone() AppData {
	clone := AppData{
		Expenses:               append([]Expense{}, d.Expenses...),
		Categories:             append([]Category{}, d.Categories...),
		Accounts:               make([]Account, len(d.Accounts)),
		MonthlyExpenses:        append([]MonthlyExpense{}, d.MonthlyExpenses...),
		MonthlyPaymentStatuses: append([]MonthlyPaymentStatus{}, d.MonthlyPaymentStatuses...),
		Incomes:                append([]Income{}, d.Incomes...),
		Config:                 d.Config,
	}
	for i, account := range d.Accounts {
		copied := account
		copied.SupportedCurrencies = append([]Currency{}, account.SupportedCurrencies...)
		copied.Balances = make(map[Currency]decimal.Decimal, len(account.Balances))
		for c, amount := range account.Balances {
			copied.Balances[c] = amount
		}
		clone.Accounts[i] = copied
	}
	return clone
}
