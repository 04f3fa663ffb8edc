// Package budget derives how much can be spent today from this month's income
// and expenses.
package budget

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendsight/spendsight/internal/model"
	"github.com/spendsight/spendsight/internal/patterns"
)

var hundred = decimal.NewFromInt(100)

// DaysRemaining counts the days left in now's month, today included.
func DaysRemaining(now time.Time) int {
	lastDay := patterns.MonthStart(now).AddDate(0, 1, -1).Day()
	return lastDay - now.Day() + 1
}

// Compute returns today's budget. Monthly income is the sum of the income
// patterns' monthly averages; month expenses run from the first of the month
// through now.
//
// When nothing is available to spend, PercentageUsed is 100 for a zero
// allowance and the raw quotient for a negative one. OverBudget is set in both
// cases.
func Compute(txns []model.Transaction, income []model.IncomePattern, now time.Time) model.DailyBudget {
	monthlyIncome := decimal.Zero
	for _, ip := range income {
		monthlyIncome = monthlyIncome.Add(ip.AverageMonthly)
	}

	expenses := patterns.Filter(txns, patterns.Expenses())
	monthSpent := patterns.Total(patterns.Filter(expenses, patterns.Between(patterns.MonthStart(now), now)))

	days := decimal.NewFromInt(int64(DaysRemaining(now)))
	available := monthlyIncome.Sub(monthSpent).Div(days)

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)
	spent := patterns.Total(patterns.Filter(expenses, patterns.Between(todayStart, todayEnd)))

	pct := hundred
	if !available.IsZero() {
		pct = spent.Div(available).Mul(hundred)
	}

	return model.DailyBudget{
		Date:             todayStart,
		AvailableToSpend: available,
		Spent:            spent,
		Remaining:        available.Sub(spent),
		PercentageUsed:   pct,
		OverBudget:       !available.IsPositive() || pct.GreaterThanOrEqual(hundred),
	}
}
