package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/wkaram/expense_tracker_app/internal/apperrors"
	"github.com/wkaram/expense_tracker_app/internal/core/domain"
	portssvc "github.com/wkaram/expense_tracker_app/internal/core/ports/services"
	"github.com/wkaram/expense_tracker_app/internal/core/services"
	"github.com/wkaram/expense_tracker_app/internal/dto"
	"github.com/wkaram/expense_tracker_app/internal/repositories/memory"
)

// --- Test Suite ---
type CategoryServiceTestSuite struct {
	suite.Suite
	store   *services.Store
	ledger  portssvc.LedgerSvcFacade
	monthly portssvc.MonthlyPaymentSvcFacade
	service portssvc.CategorySvcFacade
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.store = services.NewStore(memory.NewAppDataRepository())
	suite.Require().NoError(suite.store.Load(context.Background()))
	suite.ledger = services.NewLedgerService(suite.store)
	suite.monthly = services.NewMonthlyPaymentService(suite.store)
	suite.service = services.NewCategoryService(suite.store)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory() {
	allowance := decimal.NewFromInt(200)
	category, err := suite.service.CreateCategory(context.Background(), dto.CreateCategoryRequest{
		Name:            "Food",
		AllowedPerMonth: &allowance,
	})
	suite.Require().NoError(err)
	suite.NotEmpty(category.CategoryID)
	suite.Equal("Food", category.Name)
	suite.Require().NotNil(category.AllowedPerMonth)
	suite.True(category.AllowedPerMonth.Equal(allowance))
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_DuplicateName() {
	ctx := context.Background()
	_, err := suite.service.CreateCategory(ctx, dto.CreateCategoryRequest{Name: "Food"})
	suite.Require().NoError(err)

	_, err = suite.service.CreateCategory(ctx, dto.CreateCategoryRequest{Name: "food"})
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_ClearAllowance() {
	ctx := context.Background()
	allowance := decimal.NewFromInt(200)
	category, err := suite.service.CreateCategory(ctx, dto.CreateCategoryRequest{
		Name:            "Food",
		AllowedPerMonth: &allowance,
	})
	suite.Require().NoError(err)

	updated, err := suite.service.UpdateCategory(ctx, category.CategoryID, dto.UpdateCategoryRequest{ClearAllowance: true})
	suite.Require().NoError(err)
	suite.Nil(updated.AllowedPerMonth)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_MiscIsReserved() {
	err := suite.service.DeleteCategory(context.Background(), domain.MiscCategoryID)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_ReassignsToMisc() {
	ctx := context.Background()
	category, err := suite.service.CreateCategory(ctx, dto.CreateCategoryRequest{Name: "Food"})
	suite.Require().NoError(err)

	_, err = suite.ledger.AddIncome(ctx, dto.AddIncomeRequest{
		AccountID: "cash",
		Amount:    decimal.NewFromInt(100),
		Currency:  domain.CurrencyUSD,
	})
	suite.Require().NoError(err)

	expense, err := suite.ledger.RecordExpense(ctx, dto.CreateExpenseRequest{
		Title:      "groceries",
		Price:      decimal.NewFromInt(30),
		Currency:   domain.CurrencyUSD,
		CategoryID: category.CategoryID,
		Date:       "2026-08-15",
		AccountID:  "cash",
	})
	suite.Require().NoError(err)

	template, err := suite.monthly.CreateMonthlyExpense(ctx, dto.CreateMonthlyExpenseRequest{
		Title:      "meal plan",
		Price:      decimal.NewFromInt(20),
		Currency:   domain.CurrencyUSD,
		CategoryID: category.CategoryID,
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.DeleteCategory(ctx, category.CategoryID))

	expenses, err := suite.ledger.ListExpenses(ctx, dto.ListExpensesParams{})
	suite.Require().NoError(err)
	suite.Require().Len(expenses, 1)
	suite.Equal(expense.ExpenseID, expenses[0].ExpenseID)
	suite.Equal(domain.MiscCategoryID, expenses[0].CategoryID)

	templates, err := suite.monthly.ListMonthlyExpenses(ctx, "")
	suite.Require().NoError(err)
	suite.Require().Len(templates, 1)
	suite.Equal(template.MonthlyExpenseID, templates[0].MonthlyExpenseID)
	suite.Equal(domain.MiscCategoryID, templates[0].CategoryID)

	categories, err := suite.service.ListCategories(ctx)
	suite.Require().NoError(err)
	for _, c := range categories {
		suite.NotEqual(category.CategoryID, c.CategoryID)
	}
}

func (suite *CategoryServiceTestSuite) TestUpdateConversionRate() {
	ctx := context.Background()

	config, err := suite.service.GetConfig(ctx)
	suite.Require().NoError(err)
	suite.True(config.ConversionRate.Equal(domain.DefaultConversionRate))

	newRate := decimal.NewFromInt(95000)
	config, err = suite.service.UpdateConversionRate(ctx, newRate)
	suite.Require().NoError(err)
	suite.True(config.ConversionRate.Equal(newRate))

	_, err = suite.service.UpdateConversionRate(ctx, decimal.Zero)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.UpdateConversionRate(ctx, decimal.NewFromInt(-1))
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
