package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wkaram/expense_tracker_app/internal/apperrors"
	"github.com/wkaram/expense_tracker_app/internal/core/domain"
	portssvc "github.com/wkaram/expense_tracker_app/internal/core/ports/services"
	"github.com/wkaram/expense_tracker_app/internal/dto"
	"github.com/wkaram/expense_tracker_app/internal/utils"
)

// ledgerService implements the LedgerSvcFacade interface. Every operation
// validates fully before mutating anything; validation order is fixed as
// existence, then currency support, then sufficient funds, so the same
// precondition failure always surfaces the same error.
type ledgerService struct {
	BaseService
	store *Store
}

// NewLedgerService creates the ledger engine over the shared state store.
func NewLedgerService(store *Store) portssvc.LedgerSvcFacade {
	return &ledgerService{store: store}
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// resolveAccount finds an account and checks it supports the currency.
func resolveAccount(data *domain.AppData, accountID string, currency domain.Currency) (*domain.Account, error) {
	account := data.FindAccount(accountID)
	if account == nil {
		return nil, fmt.Errorf("account %q: %w", accountID, apperrors.ErrAccountNotFound)
	}
	if !account.SupportsCurrency(currency) {
		return nil, fmt.Errorf("account %q does not support %s: %w", account.Name, currency, apperrors.ErrUnsupportedCurrency)
	}
	return account, nil
}

func (s *ledgerService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("account name cannot be empty: %w", apperrors.ErrValidation)
	}
	if len(req.SupportedCurrencies) == 0 {
		return nil, fmt.Errorf("account must support at least one currency: %w", apperrors.ErrValidation)
	}
	for _, c := range req.SupportedCurrencies {
		if !c.IsValid() {
			return nil, fmt.Errorf("unknown currency %q: %w", c, apperrors.ErrValidation)
		}
	}

	account := domain.Account{
		AccountID:           uuid.NewString(),
		Name:                name,
		SupportedCurrencies: req.SupportedCurrencies,
	}
	account.EnsureBalances()

	err := s.store.Update(ctx, func(data *domain.AppData) error {
		data.Accounts = append(data.Accounts, account)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create account", slog.String("account_name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *ledgerService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	var updated domain.Account
	err := s.store.Update(ctx, func(data *domain.AppData) error {
		account := data.FindAccount(accountID)
		if account == nil {
			return fmt.Errorf("account %q: %w", accountID, apperrors.ErrAccountNotFound)
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return fmt.Errorf("account name cannot be empty: %w", apperrors.ErrValidation)
			}
			account.Name = name
		}
		if req.SupportedCurrencies != nil {
			if len(req.SupportedCurrencies) == 0 {
				return fmt.Errorf("account must support at least one currency: %w", apperrors.ErrValidation)
			}
			account.SupportedCurrencies = req.SupportedCurrencies
			// Preserves balances of still-supported currencies, drops the rest.
			account.EnsureBalances()
		}
		updated = *account
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return &updated, nil
}

func (s *ledgerService) DeleteAccount(ctx context.Context, accountID string) error {
	err := s.store.Update(ctx, func(data *domain.AppData) error {
		account := data.FindAccount(accountID)
		if account == nil {
			return fmt.Errorf("account %q: %w", accountID, apperrors.ErrAccountNotFound)
		}
		for _, expense := range data.Expenses {
			if expense.AccountID == accountID {
				return fmt.Errorf("cannot delete account %q: %w", account.Name, apperrors.ErrHasAssociatedExpenses)
			}
		}
		kept := data.Accounts[:0]
		for _, a := range data.Accounts {
			if a.AccountID != accountID {
				kept = append(kept, a)
			}
		}
		data.Accounts = kept
		return nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}

func (s *ledgerService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	var found *domain.Account
	s.store.View(func(data *domain.AppData) {
		if account := data.FindAccount(accountID); account != nil {
			copied := *account
			copied.SupportedCurrencies = append([]domain.Currency(nil), account.SupportedCurrencies...)
			copied.Balances = make(map[domain.Currency]decimal.Decimal, len(account.Balances))
			for currency, amount := range account.Balances {
				copied.Balances[currency] = amount
			}
			found = &copied
		}
	})
	if found == nil {
		return nil, fmt.Errorf("account %q: %w", accountID, apperrors.ErrAccountNotFound)
	}
	return found, nil
}

func (s *ledgerService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	snapshot := s.store.Snapshot()
	return snapshot.Accounts, nil
}

func (s *ledgerService) AddIncome(ctx context.Context, req dto.AddIncomeRequest) (*domain.Income, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("income amount must be positive: %w", apperrors.ErrValidation)
	}

	income := domain.Income{
		IncomeID:  uuid.NewString(),
		Title:     strings.TrimSpace(req.Title),
		Amount:    req.Amount,
		Currency:  req.Currency,
		Date:      utils.Today(),
		AccountID: req.AccountID,
	}

	err := s.store.Update(ctx, func(data *domain.AppData) error {
		account, err := resolveAccount(data, req.AccountID, req.Currency)
		if err != nil {
			return err
		}
		account.Balances[req.Currency] = account.BalanceFor(req.Currency).Add(req.Amount)
		data.Incomes = append(data.Incomes, income)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Income added",
		slog.String("income_id", income.IncomeID),
		slog.String("account_id", req.AccountID),
		slog.String("amount", utils.FormatAmount(req.Amount, req.Currency)))
	return &income, nil
}

func (s *ledgerService) ListIncomes(ctx context.Context) ([]domain.Income, error) {
	snapshot := s.store.Snapshot()
	return snapshot.Incomes, nil
}

func (s *ledgerService) RecordExpense(ctx context.Context, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("expense title cannot be empty: %w", apperrors.ErrValidation)
	}
	if !req.Price.IsPositive() {
		return nil, fmt.Errorf("expense price must be positive: %w", apperrors.ErrValidation)
	}
	if !utils.IsValidDate(req.Date) {
		return nil, fmt.Errorf("expense date must be yyyy-mm-dd: %w", apperrors.ErrValidation)
	}

	expense := domain.Expense{
		ExpenseID:  uuid.NewString(),
		Title:      title,
		Price:      req.Price,
		Currency:   req.Currency,
		CategoryID: req.CategoryID,
		Date:       req.Date,
		AccountID:  req.AccountID,
	}

	err := s.store.Update(ctx, func(data *domain.AppData) error {
		if data.FindCategory(req.CategoryID) == nil {
			return fmt.Errorf("category %q: %w", req.CategoryID, apperrors.ErrNotFound)
		}
		account, err := resolveAccount(data, req.AccountID, req.Currency)
		if err != nil {
			return err
		}
		balance := account.BalanceFor(req.Currency)
		if balance.LessThan(req.Price) {
			return fmt.Errorf("balance %s cannot cover %s: %w",
				utils.FormatAmount(balance, req.Currency),
				utils.FormatAmount(req.Price, req.Currency),
				apperrors.ErrInsufficientFunds)
		}
		account.Balances[req.Currency] = balance.Sub(req.Price)
		data.Expenses = append(data.Expenses, expense)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Expense recorded",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("account_id", req.AccountID))
	return &expense, nil
}

// UpdateExpense applies an explicit edit. Edits are balance-neutral: the
// originally debited amount stays debited regardless of price or currency
// changes. Delete and re-record to move money.
func (s *ledgerService) UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error) {
	var updated domain.Expense
	err := s.store.Update(ctx, func(data *domain.AppData) error {
		expense := data.FindExpense(expenseID)
		if expense == nil {
			return fmt.Errorf("expense %q: %w", expenseID, apperrors.ErrNotFound)
		}
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return fmt.Errorf("expense title cannot be empty: %w", apperrors.ErrValidation)
			}
			expense.Title = title
		}
		if req.Price != nil {
			if !req.Price.IsPositive() {
				return fmt.Errorf("expense price must be positive: %w", apperrors.ErrValidation)
			}
			expense.Price = *req.Price
		}
		if req.Currency != nil {
			if !req.Currency.IsValid() {
				return fmt.Errorf("unknown currency %q: %w", *req.Currency, apperrors.ErrValidation)
			}
			expense.Currency = *req.Currency
		}
		if req.CategoryID != nil {
			if data.FindCategory(*req.CategoryID) == nil {
				return fmt.Errorf("category %q: %w", *req.CategoryID, apperrors.ErrNotFound)
			}
			expense.CategoryID = *req.CategoryID
		}
		if req.Date != nil {
			if !utils.IsValidDate(*req.Date) {
				return fmt.Errorf("expense date must be yyyy-mm-dd: %w", apperrors.ErrValidation)
			}
			expense.Date = *req.Date
		}
		updated = *expense
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Expense updated", slog.String("expense_id", expenseID))
	return &updated, nil
}

func (s *ledgerService) DeleteExpense(ctx context.Context, expenseID string) error {
	err := s.store.Update(ctx, func(data *domain.AppData) error {
		expense := data.FindExpense(expenseID)
		if expense == nil {
			return fmt.Errorf("expense %q: %w", expenseID, apperrors.ErrNotFound)
		}

		// Return the money to the account that paid. When the account no
		// longer exists (possible after an import replaced the account set)
		// the credit is dropped without error.
		if account := data.FindAccount(expense.AccountID); account != nil && account.SupportsCurrency(expense.Currency) {
			account.Balances[expense.Currency] = account.BalanceFor(expense.Currency).Add(expense.Price)
		} else {
			s.LogDebug(ctx, "Reversing credit dropped, account gone",
				slog.String("expense_id", expenseID),
				slog.String("account_id", expense.AccountID))
		}

		keptExpenses := data.Expenses[:0]
		for _, e := range data.Expenses {
			if e.ExpenseID != expenseID {
				keptExpenses = append(keptExpenses, e)
			}
		}
		data.Expenses = keptExpenses

		keptStatuses := data.MonthlyPaymentStatuses[:0]
		for _, status := range data.MonthlyPaymentStatuses {
			if status.ExpenseID != expenseID {
				keptStatuses = append(keptStatuses, status)
			}
		}
		data.MonthlyPaymentStatuses = keptStatuses
		return nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Expense deleted, funds returned", slog.String("expense_id", expenseID))
	return nil
}

func (s *ledgerService) ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error) {
	snapshot := s.store.Snapshot()

	expenses := make([]domain.Expense, 0, len(snapshot.Expenses))
	query := strings.ToLower(strings.TrimSpace(params.Search))
	for _, expense := range snapshot.Expenses {
		if params.Month != "" && utils.MonthKeyOfDate(expense.Date) != params.Month {
			continue
		}
		if params.CategoryID != "" && expense.CategoryID != params.CategoryID {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(expense.Title), query) {
			continue
		}
		expenses = append(expenses, expense)
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date > expenses[j].Date
	})
	return expenses, nil
}

func (s *ledgerService) TransferBetweenAccounts(ctx context.Context, req dto.TransferRequest) error {
	if req.FromAccountID == req.ToAccountID {
		return fmt.Errorf("cannot transfer to the same account: %w", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return fmt.Errorf("transfer amount must be positive: %w", apperrors.ErrValidation)
	}

	err := s.store.Update(ctx, func(data *domain.AppData) error {
		from, err := resolveAccount(data, req.FromAccountID, req.Currency)
		if err != nil {
			return err
		}
		to, err := resolveAccount(data, req.ToAccountID, req.Currency)
		if err != nil {
			return err
		}
		balance := from.BalanceFor(req.Currency)
		if balance.LessThan(req.Amount) {
			return fmt.Errorf("balance %s cannot cover transfer of %s: %w",
				utils.FormatAmount(balance, req.Currency),
				utils.FormatAmount(req.Amount, req.Currency),
				apperrors.ErrInsufficientFunds)
		}
		from.Balances[req.Currency] = balance.Sub(req.Amount)
		to.Balances[req.Currency] = to.BalanceFor(req.Currency).Add(req.Amount)
		return nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.String("from_account_id", req.FromAccountID),
		slog.String("to_account_id", req.ToAccountID),
		slog.String("amount", utils.FormatAmount(req.Amount, req.Currency)))
	return nil
}

func (s *ledgerService) ConvertCurrency(ctx context.Context, req dto.ConvertRequest) error {
	if !req.Quantity.IsPositive() {
		return fmt.Errorf("conversion quantity must be positive: %w", apperrors.ErrValidation)
	}
	if req.Rate != nil && !req.Rate.IsPositive() {
		return fmt.Errorf("conversion rate must be positive: %w", apperrors.ErrValidation)
	}
	destCurrency := req.SourceCurrency.Complement()

	var converted decimal.Decimal
	err := s.store.Update(ctx, func(data *domain.AppData) error {
		rate := data.Config.ConversionRate
		if req.Rate != nil {
			rate = *req.Rate
		}

		source, err := resolveAccount(data, req.SourceAccountID, req.SourceCurrency)
		if err != nil {
			return err
		}
		dest, err := resolveAccount(data, req.DestinationAccountID, destCurrency)
		if err != nil {
			return err
		}
		balance := source.BalanceFor(req.SourceCurrency)
		if balance.LessThan(req.Quantity) {
			return fmt.Errorf("balance %s cannot cover conversion of %s: %w",
				utils.FormatAmount(balance, req.SourceCurrency),
				utils.FormatAmount(req.Quantity, req.SourceCurrency),
				apperrors.ErrInsufficientFunds)
		}

		converted = domain.ConvertAmount(req.Quantity, req.SourceCurrency, destCurrency, rate)
		// Debit first: source and destination may be the same account.
		source.Balances[req.SourceCurrency] = balance.Sub(req.Quantity)
		dest.Balances[destCurrency] = dest.BalanceFor(destCurrency).Add(converted)
		return nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Currency converted",
		slog.String("source_account_id", req.SourceAccountID),
		slog.String("destination_account_id", req.DestinationAccountID),
		slog.String("debited", utils.FormatAmount(req.Quantity, req.SourceCurrency)),
		slog.String("credited", utils.FormatAmount(converted, destCurrency)))
	return nil
}
