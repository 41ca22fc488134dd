package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/wkaram/expense_tracker_app/internal/apperrors"
	"github.com/wkaram/expense_tracker_app/internal/core/domain"
	portssvc "github.com/wkaram/expense_tracker_app/internal/core/ports/services"
	"github.com/wkaram/expense_tracker_app/internal/core/services"
	"github.com/wkaram/expense_tracker_app/internal/dto"
	"github.com/wkaram/expense_tracker_app/internal/repositories/memory"
	"github.com/wkaram/expense_tracker_app/internal/utils"
)

// --- Test Suite ---
type MonthlyServiceTestSuite struct {
	suite.Suite
	store   *services.Store
	ledger  portssvc.LedgerSvcFacade
	service portssvc.MonthlyPaymentSvcFacade
}

func (suite *MonthlyServiceTestSuite) SetupTest() {
	suite.store = services.NewStore(memory.NewAppDataRepository())
	suite.Require().NoError(suite.store.Load(context.Background()))
	suite.ledger = services.NewLedgerService(suite.store)
	suite.service = services.NewMonthlyPaymentService(suite.store)
}

func (suite *MonthlyServiceTestSuite) createTemplate(price int64) *domain.MonthlyExpense {
	template, err := suite.service.CreateMonthlyExpense(context.Background(), dto.CreateMonthlyExpenseRequest{
		Title:      "internet",
		Price:      decimal.NewFromInt(price),
		Currency:   domain.CurrencyUSD,
		CategoryID: domain.MiscCategoryID,
	})
	suite.Require().NoError(err)
	return template
}

func (suite *MonthlyServiceTestSuite) fund(amount int64) {
	_, err := suite.ledger.AddIncome(context.Background(), dto.AddIncomeRequest{
		AccountID: "cash",
		Amount:    decimal.NewFromInt(amount),
		Currency:  domain.CurrencyUSD,
	})
	suite.Require().NoError(err)
}

func (suite *MonthlyServiceTestSuite) TestCreateMonthlyExpense_UnknownCategory() {
	_, err := suite.service.CreateMonthlyExpense(context.Background(), dto.CreateMonthlyExpenseRequest{
		Title:      "internet",
		Price:      decimal.NewFromInt(40),
		Currency:   domain.CurrencyUSD,
		CategoryID: "ghost",
	})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *MonthlyServiceTestSuite) TestPaidStateFollowsStatusLog() {
	suite.fund(100)
	template := suite.createTemplate(40)

	listed, err := suite.service.ListMonthlyExpenses(context.Background(), "")
	suite.Require().NoError(err)
	suite.Require().Len(listed, 1)
	suite.False(listed[0].Paid)

	expense, err := suite.service.PayMonthlyExpense(context.Background(), template.MonthlyExpenseID, dto.PayMonthlyExpenseRequest{AccountID: "cash"})
	suite.Require().NoError(err)
	suite.Require().NotNil(expense)
	suite.True(expense.IsMonthlyPayment)
	suite.Equal(template.MonthlyExpenseID, expense.MonthlyExpenseID)
	suite.Equal(utils.Today(), expense.Date)

	listed, err = suite.service.ListMonthlyExpenses(context.Background(), "")
	suite.Require().NoError(err)
	suite.True(listed[0].Paid)

	// A different month is unpaid regardless.
	otherMonth := utils.MonthKey(time.Now().AddDate(0, -1, 0))
	listed, err = suite.service.ListMonthlyExpenses(context.Background(), otherMonth)
	suite.Require().NoError(err)
	suite.False(listed[0].Paid)
}

func (suite *MonthlyServiceTestSuite) TestPayMonthlyExpense_DebitsAccountOnce() {
	suite.fund(100)
	template := suite.createTemplate(40)
	ctx := context.Background()

	first, err := suite.service.PayMonthlyExpense(ctx, template.MonthlyExpenseID, dto.PayMonthlyExpenseRequest{AccountID: "cash"})
	suite.Require().NoError(err)

	// Paying again in the same month is a no-op and returns the same expense.
	second, err := suite.service.PayMonthlyExpense(ctx, template.MonthlyExpenseID, dto.PayMonthlyExpenseRequest{AccountID: "cash"})
	suite.Require().NoError(err)
	suite.Require().NotNil(second)
	suite.Equal(first.ExpenseID, second.ExpenseID)

	account, err := suite.ledger.GetAccountByID(ctx, "cash")
	suite.Require().NoError(err)
	suite.True(account.BalanceFor(domain.CurrencyUSD).Equal(decimal.NewFromInt(60)))

	expenses, err := suite.ledger.ListExpenses(ctx, dto.ListExpensesParams{})
	suite.Require().NoError(err)
	suite.Len(expenses, 1)
}

func (suite *MonthlyServiceTestSuite) TestPayMonthlyExpense_InsufficientFunds() {
	suite.fund(10)
	template := suite.createTemplate(40)

	_, err := suite.service.PayMonthlyExpense(context.Background(), template.MonthlyExpenseID, dto.PayMonthlyExpenseRequest{AccountID: "cash"})
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)

	listed, err := suite.service.ListMonthlyExpenses(context.Background(), "")
	suite.Require().NoError(err)
	suite.False(listed[0].Paid)
}

func (suite *MonthlyServiceTestSuite) TestDeleteMonthlyExpense_UnlinksHistory() {
	suite.fund(100)
	template := suite.createTemplate(40)
	ctx := context.Background()

	expense, err := suite.service.PayMonthlyExpense(ctx, template.MonthlyExpenseID, dto.PayMonthlyExpenseRequest{AccountID: "cash"})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.DeleteMonthlyExpense(ctx, template.MonthlyExpenseID))

	listed, err := suite.service.ListMonthlyExpenses(ctx, "")
	suite.Require().NoError(err)
	suite.Empty(listed)

	// The generated expense survives but no longer points at the template.
	expenses, err := suite.ledger.ListExpenses(ctx, dto.ListExpensesParams{})
	suite.Require().NoError(err)
	suite.Require().Len(expenses, 1)
	suite.Equal(expense.ExpenseID, expenses[0].ExpenseID)
	suite.Empty(expenses[0].MonthlyExpenseID)
	suite.True(expenses[0].IsMonthlyPayment)
}

func (suite *MonthlyServiceTestSuite) TestDeleteMonthlyExpense_NotFound() {
	err := suite.service.DeleteMonthlyExpense(context.Background(), "ghost")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestMonthlyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MonthlyServiceTestSuite))
}
