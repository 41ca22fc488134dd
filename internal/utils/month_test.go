package utils_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/wkaram/expense_tracker_app/internal/core/domain"
	"github.com/wkaram/expense_tracker_app/internal/utils"
)

func TestIsValidDate(t *testing.T) {
	assert.True(t, utils.IsValidDate("2026-08-15"))
	assert.False(t, utils.IsValidDate("2026-8-15"))
	assert.False(t, utils.IsValidDate("15/08/2026"))
	assert.False(t, utils.IsValidDate("2026-13-01"))
	assert.False(t, utils.IsValidDate("2026-02-30"))
	assert.False(t, utils.IsValidDate(""))
}

func TestMonthKeys(t *testing.T) {
	assert.Equal(t, "2026-08", utils.MonthKey(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-08", utils.MonthKeyOfDate("2026-08-15"))
	assert.Equal(t, "x", utils.MonthKeyOfDate("x"))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$12.35", utils.FormatAmount(decimal.RequireFromString("12.345"), domain.CurrencyUSD))
	assert.Equal(t, "$5.00", utils.FormatAmount(decimal.NewFromInt(5), domain.CurrencyUSD))
	assert.Equal(t, "890000 L.L.", utils.FormatAmount(decimal.NewFromInt(890000), domain.CurrencyLBP))
	assert.Equal(t, "1234 L.L.", utils.FormatAmount(decimal.RequireFromString("1233.7"), domain.CurrencyLBP))
}
