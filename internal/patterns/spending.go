package patterns

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendsight/spendsight/internal/config"
	"github.com/spendsight/spendsight/internal/model"
)

// SpendingPatterns summarizes expenses per category over the trailing
// spending window. One pattern is returned per category with in-window
// expenses, in canonical category order. AverageMonthly carries the window
// total. RecurringExpenses lists members of recurring groups across the
// category's whole history.
func SpendingPatterns(txns []model.Transaction, now time.Time, cfg config.AnalysisConfig) []model.SpendingPattern {
	expenses := filter(txns, Expenses())
	window := filter(expenses, Since(DaysBefore(now, cfg.SpendingWindowDays)))
	threshold := decimal.NewFromFloat(cfg.UnusualCategoryThreshold)
	ratio := decimal.NewFromFloat(cfg.RecurringVarianceRatio)

	var out []model.SpendingPattern
	for _, cat := range model.AllCategories() {
		inCat := filter(window, InCategory(cat))
		if len(inCat) == 0 {
			continue
		}
		total := Total(inCat)

		var recurring []model.Transaction
		for _, g := range DetectRecurring(filter(expenses, InCategory(cat)), ratio) {
			recurring = append(recurring, g.Transactions...)
		}

		out = append(out, model.SpendingPattern{
			Category:          cat,
			AverageMonthly:    total,
			Trend:             model.TrendStable,
			UnusualActivity:   total.GreaterThan(threshold),
			RecurringExpenses: recurring,
		})
	}
	return out
}
