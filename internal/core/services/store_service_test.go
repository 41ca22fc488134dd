package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wkaram/expense_tracker_app/internal/core/domain"
	"github.com/wkaram/expense_tracker_app/internal/core/services"
	"github.com/wkaram/expense_tracker_app/internal/repositories/memory"
)

func TestStoreLoad_DefaultsWhenNothingPersisted(t *testing.T) {
	store := services.NewStore(memory.NewAppDataRepository())
	require.NoError(t, store.Load(context.Background()))

	data := store.Snapshot()
	assert.Len(t, data.Accounts, 2)
	assert.True(t, data.Config.ConversionRate.Equal(domain.DefaultConversionRate))
}

func TestStoreLoad_NormalizesPersistedDocument(t *testing.T) {
	repo := memory.NewAppDataRepository()
	require.NoError(t, repo.SaveAppData(context.Background(), domain.AppData{
		Accounts: []domain.Account{{AccountID: "a1", Name: "Wallet"}},
	}))

	store := services.NewStore(repo)
	require.NoError(t, store.Load(context.Background()))

	data := store.Snapshot()
	require.Len(t, data.Accounts, 1)
	assert.True(t, data.Accounts[0].BalanceFor(domain.CurrencyUSD).IsZero())
	require.Len(t, data.Categories, 1)
	assert.Equal(t, domain.MiscCategoryID, data.Categories[0].CategoryID)
}

func TestStoreUpdate_PersistsOnSuccess(t *testing.T) {
	repo := memory.NewAppDataRepository()
	store := services.NewStore(repo)
	require.NoError(t, store.Load(context.Background()))

	err := store.Update(context.Background(), func(data *domain.AppData) error {
		data.FindAccount("cash").Balances[domain.CurrencyUSD] = decimal.NewFromInt(50)
		return nil
	})
	require.NoError(t, err)

	persisted, found, err := repo.LoadAppData(context.Background())
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, persisted.FindAccount("cash").BalanceFor(domain.CurrencyUSD).Equal(decimal.NewFromInt(50)))
}

func TestStoreReplace_LastWriterWins(t *testing.T) {
	store := services.NewStore(memory.NewAppDataRepository())
	require.NoError(t, store.Load(context.Background()))

	external := domain.DefaultAppData()
	external.Expenses = append(external.Expenses, domain.Expense{
		ExpenseID:  "e1",
		Title:      "from another writer",
		Price:      decimal.NewFromInt(5),
		Currency:   domain.CurrencyUSD,
		CategoryID: domain.MiscCategoryID,
		Date:       "2026-08-15",
		AccountID:  "cash",
	})

	store.Replace(external)

	data := store.Snapshot()
	require.Len(t, data.Expenses, 1)
	assert.Equal(t, "e1", data.Expenses[0].ExpenseID)
}
