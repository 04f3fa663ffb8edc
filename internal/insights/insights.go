// Package insights turns a transaction history into prioritized observations.
//
// Each detector is a pure function over the full history. Generate runs them
// in a fixed order and stably sorts the combined output by priority, so the
// same input always yields the same list.
package insights

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendsight/spendsight/internal/config"
	"github.com/spendsight/spendsight/internal/model"
)

// input is what every detector sees.
type input struct {
	txns []model.Transaction
	now  time.Time
	cfg  config.AnalysisConfig
}

type detector func(in input) []model.Insight

// detectors run in this order; ties in priority keep it.
var detectors = []detector{
	smallFoodPurchases,
	recurringSubscriptions,
	excessiveShopping,
	categorySpikes,
	spendingRatio,
	budgetRule,
	incomeVariability,
	incomeDiversification,
	recurringIncome,
}

// Generate runs every detector over txns and returns the combined insights,
// highest priority first.
func Generate(txns []model.Transaction, now time.Time, cfg config.AnalysisConfig) []model.Insight {
	in := input{txns: txns, now: now, cfg: cfg}
	var out []model.Insight
	for _, d := range detectors {
		out = append(out, d(in)...)
	}
	return SortByPriority(out)
}

// SortByPriority returns a copy of insights ordered high, medium, low.
// Insights with equal priority keep their relative order.
func SortByPriority(insights []model.Insight) []model.Insight {
	if insights == nil {
		return nil
	}
	out := make([]model.Insight, len(insights))
	copy(out, insights)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() > out[j].Priority.Rank()
	})
	return out
}

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func money(d decimal.Decimal) string { return "$" + d.StringFixed(2) }

func savings(d decimal.Decimal) *decimal.Decimal {
	d = d.Round(2)
	return &d
}

func category(c model.Category) *model.Category { return &c }
