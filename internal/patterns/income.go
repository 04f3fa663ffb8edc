package patterns

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendsight/spendsight/internal/config"
	"github.com/spendsight/spendsight/internal/model"
)

// IncomePatterns summarizes income per source (merchant, else description)
// over the trailing income window. AverageMonthly is the window total divided
// by the configured month count regardless of the actual span. Frequency and
// consistency are the configured constants.
func IncomePatterns(txns []model.Transaction, now time.Time, cfg config.AnalysisConfig) []model.IncomePattern {
	window := filter(txns, Income(), Since(DaysBefore(now, cfg.IncomeWindowDays)))

	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, t := range window {
		src := t.GroupKey()
		if _, seen := totals[src]; !seen {
			order = append(order, src)
		}
		totals[src] = totals[src].Add(t.Amount)
	}

	divisor := decimal.NewFromInt(int64(cfg.IncomeMonthsDivisor))
	if !divisor.IsPositive() {
		divisor = decimal.NewFromInt(1)
	}

	out := make([]model.IncomePattern, 0, len(order))
	for _, src := range order {
		out = append(out, model.IncomePattern{
			Source:         src,
			AverageMonthly: totals[src].Div(divisor),
			Frequency:      model.Frequency(cfg.IncomeFrequency),
			Consistency:    cfg.IncomeConsistencyScore,
		})
	}
	return out
}
