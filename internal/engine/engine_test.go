package engine

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendsight/spendsight/internal/config"
	"github.com/spendsight/spendsight/internal/logger"
	"github.com/spendsight/spendsight/internal/model"
)

var now = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return now }

func txn(typ model.TransactionType, cat model.Category, merchant, amount string, date time.Time) model.Transaction {
	return model.Transaction{
		ID:           merchant + date.Format("20060102"),
		Date:         date,
		Description:  merchant,
		MerchantName: merchant,
		Amount:       decimal.RequireFromString(amount),
		Type:         typ,
		Category:     cat,
	}
}

func history() []model.Transaction {
	return []model.Transaction{
		txn(model.TypeIncome, model.CategorySalary, "ACME PAYROLL", "3000", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)),
		txn(model.TypeIncome, model.CategorySalary, "ACME PAYROLL", "3000", time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)),
		txn(model.TypeIncome, model.CategorySalary, "ACME PAYROLL", "3000", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)),
		txn(model.TypeExpense, model.CategoryEntertainment, "NETFLIX", "15.49", time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)),
		txn(model.TypeExpense, model.CategoryEntertainment, "NETFLIX", "15.49", time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)),
		txn(model.TypeExpense, model.CategoryRent, "LANDLORD", "1200", time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)),
	}
}

func TestRefresh(t *testing.T) {
	e := New(config.DefaultAnalysis(), WithClock(fixedClock))
	e.Load(history())
	snap := e.Refresh()

	require.Len(t, snap.Transactions, 6)
	for _, tx := range snap.Transactions {
		assert.Equal(t, tx.MerchantName != "LANDLORD", tx.IsRecurring, tx.MerchantName)
	}

	require.Len(t, snap.Income, 1)
	assert.Equal(t, "ACME PAYROLL", snap.Income[0].Source)
	assert.True(t, decimal.NewFromInt(3000).Equal(snap.Income[0].AverageMonthly))

	require.Len(t, snap.Spending, 2)
	assert.Equal(t, model.CategoryEntertainment, snap.Spending[0].Category)
	assert.Equal(t, model.CategoryRent, snap.Spending[1].Category)

	require.NotNil(t, snap.Budget)
	assert.True(t, decimal.NewFromInt(100).Equal(snap.Budget.AvailableToSpend))
	assert.True(t, snap.Budget.PercentageUsed.IsZero())

	require.NotEmpty(t, snap.Insights)
	for _, ins := range snap.Insights {
		assert.Equal(t, now, ins.CreatedAt)
	}
}

func TestLoad_CopiesAndResets(t *testing.T) {
	e := New(config.DefaultAnalysis(), WithClock(fixedClock))
	txns := history()
	e.Load(txns)
	e.Refresh()

	txns[0].Description = "mutated"
	assert.Equal(t, "ACME PAYROLL", e.Transactions()[0].Description)
	assert.False(t, txns[1].IsRecurring, "caller's slice is never marked")

	e.Load(nil)
	snap := e.Snapshot()
	assert.Empty(t, snap.Transactions)
	assert.Nil(t, snap.Spending)
	assert.Nil(t, snap.Income)
	assert.Nil(t, snap.Insights)
	assert.Nil(t, snap.Budget)
}

func TestComputeDailyBudget_WithoutIncomeAnalysis(t *testing.T) {
	e := New(config.DefaultAnalysis(), WithClock(fixedClock))
	e.Load(history())

	b := e.ComputeDailyBudget()
	assert.True(t, decimal.NewFromInt(100).Equal(b.AvailableToSpend))
	assert.Nil(t, e.Snapshot().Income, "income patterns are not stored as a side effect")
}

func TestOperationsReplaceWholesale(t *testing.T) {
	e := New(config.DefaultAnalysis(), WithClock(fixedClock))
	e.Load(history())
	first := e.GenerateInsights()
	second := e.GenerateInsights()
	assert.Equal(t, first, second)

	e.Load(history()[:1])
	assert.Empty(t, e.AnalyzeSpendingPatterns())
	assert.Len(t, e.AnalyzeIncomePatterns(), 1)
}

func TestEmptyCollection(t *testing.T) {
	e := New(config.DefaultAnalysis(), WithClock(fixedClock))
	snap := e.Refresh()

	assert.Empty(t, snap.Spending)
	assert.Empty(t, snap.Income)
	assert.Empty(t, snap.Insights)
	require.NotNil(t, snap.Budget)
	assert.True(t, snap.Budget.OverBudget)
}

func TestLogsPassSummary(t *testing.T) {
	var buf bytes.Buffer
	e := New(config.DefaultAnalysis(), WithClock(fixedClock), WithLogger(logger.NewWithWriter(&buf, "info")))
	e.Load(history())
	e.Refresh()

	assert.Contains(t, buf.String(), `"message":"analysis complete"`)
	assert.Contains(t, buf.String(), `"transactions":6`)
	assert.NotContains(t, buf.String(), "loaded transactions", "debug lines filtered at info")
}
