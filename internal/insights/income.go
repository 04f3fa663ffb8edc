package insights

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/spendsight/spendsight/internal/id"
	"github.com/spendsight/spendsight/internal/model"
	"github.com/spendsight/spendsight/internal/patterns"
)

func recentIncome(in input) []model.Transaction {
	return patterns.Filter(in.txns, patterns.Income(), patterns.Since(in.now.AddDate(0, -in.cfg.IncomeLookbackMonths, 0)))
}

func incomeVariability(in input) []model.Insight {
	buckets := make(map[string]decimal.Decimal)
	for _, t := range recentIncome(in) {
		key := t.Date.Format("2006-01")
		buckets[key] = buckets[key].Add(t.Amount)
	}
	if len(buckets) < 2 {
		return nil
	}

	months := make([]string, 0, len(buckets))
	for k := range buckets {
		months = append(months, k)
	}
	sort.Strings(months)
	totals := make([]decimal.Decimal, len(months))
	for i, m := range months {
		totals[i] = buckets[m]
	}

	mean, variance := patterns.MeanVariance(totals)
	if !variance.GreaterThan(mean.Mul(dec(in.cfg.IncomeVariabilityRatio))) {
		return nil
	}
	return []model.Insight{{
		ID:    id.Insight("income-variability", ""),
		Type:  model.InsightSuggestion,
		Title: "Irregular income",
		Description: fmt.Sprintf("Your monthly income varied noticeably over the last %d months (average %s). Keep a larger buffer for lean months.",
			len(months), money(mean)),
		Actionable: true,
		Priority:   model.PriorityMedium,
		CreatedAt:  in.now,
	}}
}

func incomeDiversification(in input) []model.Insight {
	if len(in.txns) == 0 {
		return nil
	}
	n := len(recentIncome(in))
	if n >= in.cfg.MinIncomeTransactions {
		return nil
	}
	return []model.Insight{{
		ID:    id.Insight("income-diversification", ""),
		Type:  model.InsightSuggestion,
		Title: "Consider additional income sources",
		Description: fmt.Sprintf("Only %d income deposits arrived in the last %d months. A second source would make you less dependent on one payer.",
			n, in.cfg.IncomeLookbackMonths),
		Actionable: true,
		Priority:   model.PriorityLow,
		CreatedAt:  in.now,
	}}
}

func recurringIncome(in input) []model.Insight {
	groups := patterns.DetectRecurring(patterns.Filter(in.txns, patterns.Income()), dec(in.cfg.RecurringVarianceRatio))
	if len(groups) == 0 {
		return nil
	}
	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.MeanAmount)
	}
	return []model.Insight{{
		ID:    id.Insight("recurring-income", ""),
		Type:  model.InsightAchievement,
		Title: "Steady income",
		Description: fmt.Sprintf("%d recurring income source(s) bring in about %s per payment cycle.",
			len(groups), money(total)),
		Actionable: false,
		Priority:   model.PriorityLow,
		CreatedAt:  in.now,
	}}
}
