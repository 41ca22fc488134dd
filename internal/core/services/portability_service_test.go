package services_test

import (
	"context"
	"encoding/json"
	"strings"
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
type PortabilityServiceTestSuite struct {
	suite.Suite
	store   *services.Store
	ledger  portssvc.LedgerSvcFacade
	service portssvc.PortabilitySvcFacade
}

func (suite *PortabilityServiceTestSuite) SetupTest() {
	suite.store = services.NewStore(memory.NewAppDataRepository())
	suite.Require().NoError(suite.store.Load(context.Background()))
	suite.ledger = services.NewLedgerService(suite.store)
	suite.service = services.NewPortabilityService(suite.store)
}

func (suite *PortabilityServiceTestSuite) seedExpense() *domain.Expense {
	ctx := context.Background()
	_, err := suite.ledger.AddIncome(ctx, dto.AddIncomeRequest{
		AccountID: "cash",
		Amount:    decimal.NewFromInt(100),
		Currency:  domain.CurrencyUSD,
	})
	suite.Require().NoError(err)

	expense, err := suite.ledger.RecordExpense(ctx, dto.CreateExpenseRequest{
		Title:      "groceries",
		Price:      decimal.NewFromInt(30),
		Currency:   domain.CurrencyUSD,
		CategoryID: domain.MiscCategoryID,
		Date:       "2026-08-15",
		AccountID:  "cash",
	})
	suite.Require().NoError(err)
	return expense
}

func (suite *PortabilityServiceTestSuite) TestExportData_DenormalizesNames() {
	expense := suite.seedExpense()

	payload, err := suite.service.ExportData(context.Background())
	suite.Require().NoError(err)

	suite.Require().Len(payload.Expenses, 1)
	suite.Equal(expense.ExpenseID, *payload.Expenses[0].ID)
	suite.Equal("Misc", *payload.Expenses[0].Category)
	suite.Require().NotNil(payload.Expenses[0].Account)
	suite.Equal("Cash", *payload.Expenses[0].Account)

	suite.Len(payload.Accounts, 2)
	suite.Len(payload.Categories, 1)
}

func (suite *PortabilityServiceTestSuite) TestExportLegacy_CSV() {
	expense := suite.seedExpense()

	content, filename, err := suite.service.ExportLegacy(context.Background(), portssvc.LegacyFormatCSV)
	suite.Require().NoError(err)
	suite.True(strings.HasSuffix(filename, ".csv"), filename)

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	suite.Require().Len(lines, 2)
	suite.Equal("id,date,title,price,currency,category", lines[0])
	suite.Equal(expense.ExpenseID+",2026-08-15,groceries,30,$,Misc", lines[1])
}

func (suite *PortabilityServiceTestSuite) TestExportLegacy_JSON() {
	suite.seedExpense()

	content, filename, err := suite.service.ExportLegacy(context.Background(), portssvc.LegacyFormatJSON)
	suite.Require().NoError(err)
	suite.True(strings.HasSuffix(filename, ".json"), filename)

	var records []dto.LegacyRecord
	suite.Require().NoError(json.Unmarshal(content, &records))
	suite.Require().Len(records, 1)
	suite.Equal("groceries", records[0].Title)
	suite.Equal("$", records[0].Currency)
}

func (suite *PortabilityServiceTestSuite) TestExportLegacy_XLSX() {
	suite.seedExpense()

	content, filename, err := suite.service.ExportLegacy(context.Background(), portssvc.LegacyFormatXLSX)
	suite.Require().NoError(err)
	suite.True(strings.HasSuffix(filename, ".xlsx"), filename)
	suite.NotEmpty(content)
}

func (suite *PortabilityServiceTestSuite) TestValidateImport_MissingExpensesSection() {
	_, err := suite.service.ValidateImport(context.Background(), []byte(`{"accounts":[]}`))
	suite.Require().Error(err)

	var schemaErr *apperrors.SchemaValidationError
	suite.Require().ErrorAs(err, &schemaErr)
	suite.Contains(schemaErr.Violations, "expenses")
}

func (suite *PortabilityServiceTestSuite) TestValidateImport_InvalidCurrencyRejectsWholeFile() {
	raw := []byte(`{
		"expenses": [
			{"id":"e1","date":"2026-08-15","title":"ok","price":10,"currency":"$","category":"Food"},
			{"id":"e2","date":"2026-08-16","title":"bad","price":5,"currency":"EUR","category":"Food"}
		]
	}`)

	_, err := suite.service.ValidateImport(context.Background(), raw)
	suite.Require().Error(err)

	var schemaErr *apperrors.SchemaValidationError
	suite.Require().ErrorAs(err, &schemaErr)
	suite.Contains(schemaErr.Violations, "expenses")

	// Nothing was applied.
	expenses, err := suite.ledger.ListExpenses(context.Background(), dto.ListExpensesParams{})
	suite.Require().NoError(err)
	suite.Empty(expenses)
}

func (suite *PortabilityServiceTestSuite) TestValidateImport_NotJSON() {
	_, err := suite.service.ValidateImport(context.Background(), []byte("not json at all"))
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PortabilityServiceTestSuite) TestValidateImport_MissingFieldReported() {
	raw := []byte(`{"expenses":[{"id":"e1","date":"2026-08-15","price":10,"currency":"$","category":"Food"}]}`)

	_, err := suite.service.ValidateImport(context.Background(), raw)
	suite.Require().Error(err)

	var schemaErr *apperrors.SchemaValidationError
	suite.Require().ErrorAs(err, &schemaErr)
	suite.Require().Contains(schemaErr.Violations, "expenses")
	suite.Contains(schemaErr.Violations["expenses"][0], "Title")
}

func (suite *PortabilityServiceTestSuite) TestCommitImport_ExpensesOnly() {
	ctx := context.Background()
	raw := []byte(`{
		"expenses": [
			{"id":"e1","date":"2026-08-15","title":"lunch","price":12,"currency":"$","category":"Food"},
			{"id":"e2","date":"2026-08-16","title":"misc thing","price":3,"currency":"$","category":"Misc"}
		]
	}`)

	payload, err := suite.service.ValidateImport(ctx, raw)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.service.CommitImport(ctx, payload))

	expenses, err := suite.ledger.ListExpenses(ctx, dto.ListExpensesParams{})
	suite.Require().NoError(err)
	suite.Require().Len(expenses, 2)
	for _, e := range expenses {
		// Everything attaches to the first account of the final set.
		suite.Equal("cash", e.AccountID)
	}

	// "Food" had no matching category, so one was derived from the name.
	data := suite.store.Snapshot()
	var food *domain.Category
	for i := range data.Categories {
		if data.Categories[i].Name == "Food" {
			food = &data.Categories[i]
		}
	}
	suite.Require().NotNil(food, "expected a derived Food category")
	suite.Nil(food.AllowedPerMonth)

	lunch := data.FindExpense("e1")
	suite.Require().NotNil(lunch)
	suite.Equal(food.CategoryID, lunch.CategoryID)

	miscThing := data.FindExpense("e2")
	suite.Require().NotNil(miscThing)
	suite.Equal(domain.MiscCategoryID, miscThing.CategoryID)
}

func (suite *PortabilityServiceTestSuite) TestCommitImport_ReplacesAccountsAndClearsStatuses() {
	ctx := context.Background()

	// Pre-existing paid status that must not survive the import.
	monthly := services.NewMonthlyPaymentService(suite.store)
	_, err := suite.ledger.AddIncome(ctx, dto.AddIncomeRequest{
		AccountID: "cash",
		Amount:    decimal.NewFromInt(100),
		Currency:  domain.CurrencyUSD,
	})
	suite.Require().NoError(err)
	template, err := monthly.CreateMonthlyExpense(ctx, dto.CreateMonthlyExpenseRequest{
		Title:      "internet",
		Price:      decimal.NewFromInt(40),
		Currency:   domain.CurrencyUSD,
		CategoryID: domain.MiscCategoryID,
	})
	suite.Require().NoError(err)
	_, err = monthly.PayMonthlyExpense(ctx, template.MonthlyExpenseID, dto.PayMonthlyExpenseRequest{AccountID: "cash"})
	suite.Require().NoError(err)

	raw := []byte(`{
		"expenses": [],
		"accounts": [
			{"id":"wallet","name":"Wallet","balances":{"$":250},"supportedCurrencies":["$"]}
		],
		"incomes": [
			{"id":"old-income","title":"bonus","amount":250,"currency":"$","date":"2026-08-01"}
		]
	}`)

	payload, err := suite.service.ValidateImport(ctx, raw)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.service.CommitImport(ctx, payload))

	accounts, err := suite.ledger.ListAccounts(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(accounts, 1)
	suite.Equal("wallet", accounts[0].AccountID)
	// Balances come from the file verbatim, never recomputed.
	suite.True(accounts[0].BalanceFor(domain.CurrencyUSD).Equal(decimal.NewFromInt(250)))

	data := suite.store.Snapshot()
	suite.Empty(data.MonthlyPaymentStatuses)
	// The template survived (no monthlyExpenses section in the file).
	suite.Len(data.MonthlyExpenses, 1)

	// Income ids are regenerated and attach to the first account.
	suite.Require().Len(data.Incomes, 1)
	suite.NotEqual("old-income", data.Incomes[0].IncomeID)
	suite.Equal("bonus", data.Incomes[0].Title)
	suite.Equal("wallet", data.Incomes[0].AccountID)
}

func (suite *PortabilityServiceTestSuite) TestCommitImport_RoundTripsOwnExport() {
	ctx := context.Background()
	original := suite.seedExpense()

	payload, err := suite.service.ExportData(ctx)
	suite.Require().NoError(err)

	raw, err := json.Marshal(payload)
	suite.Require().NoError(err)

	validated, err := suite.service.ValidateImport(ctx, raw)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.service.CommitImport(ctx, validated))

	expenses, err := suite.ledger.ListExpenses(ctx, dto.ListExpensesParams{})
	suite.Require().NoError(err)
	suite.Require().Len(expenses, 1)
	suite.Equal(original.ExpenseID, expenses[0].ExpenseID)
	suite.Equal(domain.MiscCategoryID, expenses[0].CategoryID)

	accounts, err := suite.ledger.ListAccounts(ctx)
	suite.Require().NoError(err)
	suite.Len(accounts, 2)
	// 100 income minus the 30 expense.
	account, err := suite.ledger.GetAccountByID(ctx, "cash")
	suite.Require().NoError(err)
	suite.True(account.BalanceFor(domain.CurrencyUSD).Equal(decimal.NewFromInt(70)))
}

func TestPortabilityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PortabilityServiceTestSuite))
}
