package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wkaram/expense_tracker_app/internal/apperrors"
	"github.com/wkaram/expense_tracker_app/internal/core/domain"
	portssvc "github.com/wkaram/expense_tracker_app/internal/core/ports/services"
	"github.com/wkaram/expense_tracker_app/internal/dto"
	"github.com/wkaram/expense_tracker_app/internal/utils"
)

// monthlyPaymentService implements the MonthlyPaymentSvcFacade interface.
type monthlyPaymentService struct {
	BaseService
	store *Store
	// now is injectable so tests can pin the current month.
	now func() time.Time
}

// NewMonthlyPaymentService creates the recurring payment tracker.
func NewMonthlyPaymentService(store *Store) portssvc.MonthlyPaymentSvcFacade {
	return &monthlyPaymentService{store: store, now: time.Now}
}

// Ensure monthlyPaymentService implements the MonthlyPaymentSvcFacade interface
var _ portssvc.MonthlyPaymentSvcFacade = (*monthlyPaymentService)(nil)

func (s *monthlyPaymentService) CreateMonthlyExpense(ctx context.Context, req dto.CreateMonthlyExpenseRequest) (*domain.MonthlyExpense, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("monthly expense title cannot be empty: %w", apperrors.ErrValidation)
	}
	if !req.Price.IsPositive() {
		return nil, fmt.Errorf("monthly expense price must be positive: %w", apperrors.ErrValidation)
	}

	template := domain.MonthlyExpense{
		MonthlyExpenseID: uuid.NewString(),
		Title:            title,
		Price:            req.Price,
		Currency:         req.Currency,
		CategoryID:       req.CategoryID,
	}

	err := s.store.Update(ctx, func(data *domain.AppData) error {
		if data.FindCategory(req.CategoryID) == nil {
			return fmt.Errorf("category %q: %w", req.CategoryID, apperrors.ErrNotFound)
		}
		data.MonthlyExpenses = append(data.MonthlyExpenses, template)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Monthly expense created", slog.String("monthly_expense_id", template.MonthlyExpenseID))
	return &template, nil
}

// DeleteMonthlyExpense removes the template and its payment statuses.
// Expenses already generated from the template stay in the ledger; only
// their link back to the template is severed.
func (s *monthlyPaymentService) DeleteMonthlyExpense(ctx context.Context, monthlyExpenseID string) error {
	err := s.store.Update(ctx, func(data *domain.AppData) error {
		if data.FindMonthlyExpense(monthlyExpenseID) == nil {
			return fmt.Errorf("monthly expense %q: %w", monthlyExpenseID, apperrors.ErrNotFound)
		}

		kept := data.MonthlyExpenses[:0]
		for _, m := range data.MonthlyExpenses {
			if m.MonthlyExpenseID != monthlyExpenseID {
				kept = append(kept, m)
			}
		}
		data.MonthlyExpenses = kept

		keptStatuses := data.MonthlyPaymentStatuses[:0]
		for _, status := range data.MonthlyPaymentStatuses {
			if status.MonthlyExpenseID != monthlyExpenseID {
				keptStatuses = append(keptStatuses, status)
			}
		}
		data.MonthlyPaymentStatuses = keptStatuses

		for i := range data.Expenses {
			if data.Expenses[i].MonthlyExpenseID == monthlyExpenseID {
				data.Expenses[i].MonthlyExpenseID = ""
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Monthly expense deleted", slog.String("monthly_expense_id", monthlyExpenseID))
	return nil
}

// ListMonthlyExpenses returns every template with its paid flag for the
// given month. An empty month defaults to the current one.
func (s *monthlyPaymentService) ListMonthlyExpenses(ctx context.Context, month string) ([]dto.MonthlyExpenseResponse, error) {
	if month == "" {
		month = utils.MonthKey(s.now())
	}

	snapshot := s.store.Snapshot()
	responses := make([]dto.MonthlyExpenseResponse, 0, len(snapshot.MonthlyExpenses))
	for i := range snapshot.MonthlyExpenses {
		template := &snapshot.MonthlyExpenses[i]
		responses = append(responses, dto.ToMonthlyExpenseResponse(template, snapshot.IsPaidForMonth(template.MonthlyExpenseID, month)))
	}
	return responses, nil
}

// PayMonthlyExpense records the template as paid for the current month: it
// debits the account, appends a linked ledger expense, and marks the status.
// Paying an already-paid template is a no-op that returns the linked expense.
func (s *monthlyPaymentService) PayMonthlyExpense(ctx context.Context, monthlyExpenseID string, req dto.PayMonthlyExpenseRequest) (*domain.Expense, error) {
	month := utils.MonthKey(s.now())

	var created *domain.Expense
	err := s.store.Update(ctx, func(data *domain.AppData) error {
		template := data.FindMonthlyExpense(monthlyExpenseID)
		if template == nil {
			return fmt.Errorf("monthly expense %q: %w", monthlyExpenseID, apperrors.ErrNotFound)
		}

		for _, status := range data.MonthlyPaymentStatuses {
			if status.MonthlyExpenseID == monthlyExpenseID && status.Month == month {
				if existing := data.FindExpense(status.ExpenseID); existing != nil {
					copied := *existing
					created = &copied
				}
				return nil
			}
		}

		account, err := resolveAccount(data, req.AccountID, template.Currency)
		if err != nil {
			return err
		}
		balance := account.BalanceFor(template.Currency)
		if balance.LessThan(template.Price) {
			return fmt.Errorf("balance %s cannot cover %s: %w",
				utils.FormatAmount(balance, template.Currency),
				utils.FormatAmount(template.Price, template.Currency),
				apperrors.ErrInsufficientFunds)
		}

		expense := domain.Expense{
			ExpenseID:        uuid.NewString(),
			Title:            template.Title,
			Price:            template.Price,
			Currency:         template.Currency,
			CategoryID:       template.CategoryID,
			Date:             utils.Today(),
			IsMonthlyPayment: true,
			MonthlyExpenseID: template.MonthlyExpenseID,
			AccountID:        req.AccountID,
		}

		account.Balances[template.Currency] = balance.Sub(template.Price)
		data.Expenses = append(data.Expenses, expense)
		data.MonthlyPaymentStatuses = append(data.MonthlyPaymentStatuses, domain.MonthlyPaymentStatus{
			MonthlyExpenseID: template.MonthlyExpenseID,
			Month:            month,
			ExpenseID:        expense.ExpenseID,
		})
		created = &expense
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created != nil {
		s.LogInfo(ctx, "Monthly expense paid",
			slog.String("monthly_expense_id", monthlyExpenseID),
			slog.String("expense_id", created.ExpenseID),
			slog.String("month", month))
	}
	return created, nil
}
