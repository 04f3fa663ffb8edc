package budget

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/spendsight/spendsight/internal/model"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func salary(amount string) []model.IncomePattern {
	return []model.IncomePattern{{Source: "ACME PAYROLL", AverageMonthly: d(amount), Frequency: model.FrequencyMonthly, Consistency: 85}}
}

func spend(amount string, at time.Time) model.Transaction {
	return model.Transaction{Date: at, Description: "X", Amount: d(amount), Type: model.TypeExpense, Category: model.CategoryOther}
}

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func TestDaysRemaining(t *testing.T) {
	tests := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC), 30},
		{time.Date(2025, 4, 30, 23, 0, 0, 0, time.UTC), 1},
		{time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), 14},
		{time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), 15},
		{time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysRemaining(tt.now), tt.now.String())
	}
}

func TestCompute_FirstOfMonth(t *testing.T) {
	now := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	got := Compute(nil, salary("3000"), now)

	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), got.Date)
	assertDec(t, "100", got.AvailableToSpend, "available")
	assertDec(t, "0", got.Spent, "spent")
	assertDec(t, "100", got.Remaining, "remaining")
	assertDec(t, "0", got.PercentageUsed, "percentage")
	assert.False(t, got.OverBudget)
}

func TestCompute_SpentToday(t *testing.T) {
	now := time.Date(2025, 4, 11, 18, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		spend("600", time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC)),
		spend("25", time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC)),
		spend("999", time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC)), // last month
		{Date: time.Date(2025, 4, 11, 0, 0, 0, 0, time.UTC), Amount: d("500"), Type: model.TypeIncome, Category: model.CategorySalary},
	}
	got := Compute(txns, salary("3000"), now)

	// (3000 - 625) / 20 days
	assertDec(t, "118.75", got.AvailableToSpend, "available")
	assertDec(t, "25", got.Spent, "spent")
	assertDec(t, "93.75", got.Remaining, "remaining")
	assert.Equal(t, "21.05", got.PercentageUsed.StringFixed(2))
	assert.False(t, got.OverBudget)
}

func TestCompute_OverspentToday(t *testing.T) {
	now := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	txns := []model.Transaction{spend("150", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))}
	got := Compute(txns, salary("3000"), now)

	// Today's spending also reduces the month total.
	assert.Equal(t, "95.00", got.AvailableToSpend.StringFixed(2))
	assert.True(t, got.PercentageUsed.GreaterThan(d("100")))
	assert.True(t, got.Remaining.IsNegative())
	assert.True(t, got.OverBudget)
}

func TestCompute_NothingAvailable(t *testing.T) {
	now := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	got := Compute(nil, nil, now)

	assertDec(t, "0", got.AvailableToSpend, "available")
	assertDec(t, "100", got.PercentageUsed, "percentage")
	assert.True(t, got.OverBudget)
}

func TestCompute_NegativeAllowance(t *testing.T) {
	now := time.Date(2025, 4, 21, 10, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		spend("3500", time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)),
		spend("10", time.Date(2025, 4, 21, 0, 0, 0, 0, time.UTC)),
	}
	got := Compute(txns, salary("3000"), now)

	// (3000 - 3510) / 10 days
	assertDec(t, "-51", got.AvailableToSpend, "available")
	assertDec(t, "-61", got.Remaining, "remaining")
	assert.True(t, got.PercentageUsed.IsNegative())
	assert.True(t, got.OverBudget)
}
