package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trend describes the direction of spending in a category.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Frequency describes how often an income source pays out.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyIrregular Frequency = "irregular"
)

// RecurringGroup is a merchant or income source that repeats with a stable amount.
type RecurringGroup struct {
	Key          string
	MeanAmount   decimal.Decimal
	Count        int
	Transactions []Transaction
}

// SpendingPattern summarizes one category's trailing-window expenses.
type SpendingPattern struct {
	Category Category
	// AverageMonthly is the trailing-window total, not a calendar average.
	AverageMonthly    decimal.Decimal
	Trend             Trend
	UnusualActivity   bool
	RecurringExpenses []Transaction
}

// IncomePattern summarizes one income source over the trailing window.
type IncomePattern struct {
	Source         string
	AverageMonthly decimal.Decimal
	Frequency      Frequency
	Consistency    int // 0-100
}

// DailyBudget is the day-scoped spendable amount snapshot.
type DailyBudget struct {
	Date             time.Time
	AvailableToSpend decimal.Decimal
	Spent            decimal.Decimal
	Remaining        decimal.Decimal
	PercentageUsed   decimal.Decimal
	OverBudget       bool
}
