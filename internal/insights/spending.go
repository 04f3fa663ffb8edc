package insights

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendsight/spendsight/internal/id"
	"github.com/spendsight/spendsight/internal/model"
	"github.com/spendsight/spendsight/internal/patterns"
)

// spikeCategories are compared against their own recent history.
var spikeCategories = []model.Category{
	model.CategoryFood,
	model.CategoryTransportation,
	model.CategoryEntertainment,
	model.CategoryUtilities,
	model.CategoryShopping,
	model.CategoryHealthcare,
}

func smallFoodPurchases(in input) []model.Insight {
	limit := dec(in.cfg.SmallFoodAmount)
	small := patterns.Filter(in.txns,
		patterns.Expenses(),
		patterns.InCategory(model.CategoryFood),
		patterns.Since(patterns.DaysBefore(in.now, in.cfg.SmallPurchaseWindowDays)),
		func(t model.Transaction) bool { return t.Amount.LessThan(limit) },
	)
	if len(small) <= in.cfg.SmallFoodMinCount {
		return nil
	}
	total := patterns.Total(small)
	return []model.Insight{{
		ID:    id.Insight("small-food-purchases", ""),
		Type:  model.InsightSuggestion,
		Title: "Frequent small food purchases",
		Description: fmt.Sprintf("You made %d food purchases under %s in the last %d days, totaling %s. Brewing coffee or packing lunch could cut most of that.",
			len(small), money(limit), in.cfg.SmallPurchaseWindowDays, money(total)),
		Category:         category(model.CategoryFood),
		PotentialSavings: savings(total.Mul(dec(in.cfg.SmallFoodSavingsRate))),
		Actionable:       true,
		Priority:         model.PriorityMedium,
		CreatedAt:        in.now,
	}}
}

func recurringSubscriptions(in input) []model.Insight {
	entertainment := patterns.Filter(in.txns, patterns.Expenses(), patterns.InCategory(model.CategoryEntertainment))
	multiplier := decimal.NewFromInt(int64(in.cfg.SubscriptionAnnualMultiplier))

	var out []model.Insight
	for _, g := range patterns.DetectRecurring(entertainment, dec(in.cfg.RecurringVarianceRatio)) {
		out = append(out, model.Insight{
			ID:    id.Insight("subscription", g.Key),
			Type:  model.InsightSuggestion,
			Title: "Recurring subscription: " + g.Key,
			Description: fmt.Sprintf("%s charges about %s each time (%d charges so far). Cancel it if you no longer use it.",
				g.Key, money(g.MeanAmount), g.Count),
			Category:         category(model.CategoryEntertainment),
			PotentialSavings: savings(g.MeanAmount.Mul(multiplier)),
			Actionable:       true,
			Priority:         model.PriorityLow,
			CreatedAt:        in.now,
		})
	}
	return out
}

func excessiveShopping(in input) []model.Insight {
	total := patterns.Total(patterns.Filter(in.txns,
		patterns.Expenses(),
		patterns.InCategory(model.CategoryShopping),
		patterns.Since(patterns.DaysBefore(in.now, in.cfg.ShoppingWindowDays)),
	))
	limit := dec(in.cfg.ShoppingLimit)
	if !total.GreaterThan(limit) {
		return nil
	}
	return []model.Insight{{
		ID:    id.Insight("excessive-shopping", ""),
		Type:  model.InsightWarning,
		Title: "High shopping spend",
		Description: fmt.Sprintf("You spent %s on shopping in the last %d days, above the %s guideline.",
			money(total), in.cfg.ShoppingWindowDays, money(limit)),
		Category:         category(model.CategoryShopping),
		PotentialSavings: savings(total.Mul(dec(in.cfg.ShoppingSavingsRate))),
		Actionable:       true,
		Priority:         model.PriorityHigh,
		CreatedAt:        in.now,
	}}
}

// inMonth selects transactions in the calendar month starting at start.
func inMonth(start time.Time) patterns.Predicate {
	end := start.AddDate(0, 1, 0)
	return func(t model.Transaction) bool {
		return !t.Date.Before(start) && t.Date.Before(end)
	}
}

func categorySpikes(in input) []model.Insight {
	monthStart := patterns.MonthStart(in.now)
	prev1 := monthStart.AddDate(0, -1, 0)
	prev2 := monthStart.AddDate(0, -2, 0)
	ratio := dec(in.cfg.CategorySpikeRatio)
	two := decimal.NewFromInt(2)

	expenses := patterns.Filter(in.txns, patterns.Expenses())
	var out []model.Insight
	for _, cat := range spikeCategories {
		inCat := patterns.Filter(expenses, patterns.InCategory(cat))
		current := patterns.Total(patterns.Filter(inCat, patterns.Between(monthStart, in.now)))
		avg := patterns.Total(patterns.Filter(inCat, inMonth(prev1))).
			Add(patterns.Total(patterns.Filter(inCat, inMonth(prev2)))).
			Div(two)
		if !avg.IsPositive() || !current.GreaterThan(avg.Mul(ratio)) {
			continue
		}
		out = append(out, model.Insight{
			ID:    id.Insight("category-spike", string(cat)),
			Type:  model.InsightWarning,
			Title: fmt.Sprintf("Unusual %s spending", cat),
			Description: fmt.Sprintf("%s spending this month is %s, compared with a recent monthly average of %s.",
				cat, money(current), money(avg)),
			Category:   category(cat),
			Actionable: true,
			Priority:   model.PriorityMedium,
			CreatedAt:  in.now,
		})
	}
	return out
}

func spendingRatio(in input) []model.Insight {
	month := patterns.Filter(in.txns, patterns.Between(patterns.MonthStart(in.now), in.now))
	income := patterns.Total(patterns.Filter(month, patterns.Income()))
	if !income.IsPositive() {
		return nil
	}
	spent := patterns.Total(patterns.Filter(month, patterns.Expenses()))
	ratio := spent.Div(income)
	if !ratio.GreaterThan(dec(in.cfg.SpendingRatioLimit)) {
		return nil
	}
	return []model.Insight{{
		ID:    id.Insight("spending-ratio", ""),
		Type:  model.InsightWarning,
		Title: "Spending close to income",
		Description: fmt.Sprintf("You have spent %s of the %s earned this month (%s%%).",
			money(spent), money(income), ratio.Mul(decimal.NewFromInt(100)).StringFixed(0)),
		Actionable: true,
		Priority:   model.PriorityHigh,
		CreatedAt:  in.now,
	}}
}

func budgetRule(in input) []model.Insight {
	income := patterns.Total(patterns.Filter(in.txns, patterns.Income(), patterns.Between(patterns.MonthStart(in.now), in.now)))
	if !income.IsPositive() {
		return nil
	}
	needs := income.Mul(dec(in.cfg.NeedsShare))
	wants := income.Mul(dec(in.cfg.WantsShare))
	save := income.Mul(dec(in.cfg.SavingsShare))
	return []model.Insight{{
		ID:    id.Insight("budget-rule", ""),
		Type:  model.InsightSuggestion,
		Title: "Try the 50/30/20 budget",
		Description: fmt.Sprintf("Based on %s of income this month: %s for needs, %s for wants and %s for savings.",
			money(income), money(needs), money(wants), money(save)),
		Actionable: true,
		Priority:   model.PriorityMedium,
		CreatedAt:  in.now,
	}}
}
