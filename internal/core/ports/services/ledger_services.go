package services

import (
	"context"

	"github.com/wkaram/expense_tracker_app/internal/core/domain"
	"github.com/wkaram/expense_tracker_app/internal/dto"
)

// LedgerSvcFacade is the balance-affecting core: every operation that
// debits or credits an account balance goes through here. Each operation is
// atomic; it is either fully applied and persisted or rejected with no state
// change.
type LedgerSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	AddIncome(ctx context.Context, req dto.AddIncomeRequest) (*domain.Income, error)
	ListIncomes(ctx context.Context) ([]domain.Income, error)

	RecordExpense(ctx context.Context, req dto.CreateExpenseRequest) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, expenseID string, req dto.UpdateExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string) error
	ListExpenses(ctx context.Context, params dto.ListExpensesParams) ([]domain.Expense, error)

	TransferBetweenAccounts(ctx context.Context, req dto.TransferRequest) error
	ConvertCurrency(ctx context.Context, req dto.ConvertRequest) error
}
