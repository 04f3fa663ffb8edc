// Package patterns derives recurring charges and per-category / per-source
// summaries from a transaction history. Every function is a pure function of
// its inputs.
package patterns

import (
	"github.com/shopspring/decimal"

	"github.com/spendsight/spendsight/internal/model"
)

const minRecurringOccurrences = 2

// DetectRecurring groups transactions by merchant (falling back to the
// description) and keeps groups with at least two members whose population
// variance is below varianceRatio times the mean amount. Groups are returned in
// order of first appearance.
func DetectRecurring(txns []model.Transaction, varianceRatio decimal.Decimal) []model.RecurringGroup {
	groups := make(map[string][]model.Transaction)
	var order []string
	for _, t := range txns {
		key := t.GroupKey()
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], t)
	}

	var out []model.RecurringGroup
	for _, key := range order {
		members := groups[key]
		if len(members) < minRecurringOccurrences {
			continue
		}
		mean, variance := meanVariance(amounts(members))
		if !variance.LessThan(varianceRatio.Mul(mean)) {
			continue
		}
		out = append(out, model.RecurringGroup{
			Key:          key,
			MeanAmount:   mean,
			Count:        len(members),
			Transactions: members,
		})
	}
	return out
}

// MarkRecurring returns a copy of txns with IsRecurring set on every member of
// a recurring expense or income group. Expenses and income are grouped
// separately.
func MarkRecurring(txns []model.Transaction, varianceRatio decimal.Decimal) []model.Transaction {
	type groupID struct {
		typ model.TransactionType
		key string
	}
	recurring := make(map[groupID]bool)
	for _, typ := range []model.TransactionType{model.TypeExpense, model.TypeIncome} {
		for _, g := range DetectRecurring(filter(txns, ofType(typ)), varianceRatio) {
			recurring[groupID{typ, g.Key}] = true
		}
	}

	out := make([]model.Transaction, len(txns))
	for i, t := range txns {
		t.IsRecurring = recurring[groupID{t.Type, t.GroupKey()}]
		out[i] = t
	}
	return out
}

func amounts(txns []model.Transaction) []decimal.Decimal {
	out := make([]decimal.Decimal, len(txns))
	for i, t := range txns {
		out[i] = t.Amount
	}
	return out
}

// meanVariance returns the mean and population variance of values.
func meanVariance(values []decimal.Decimal) (mean, variance decimal.Decimal) {
	if len(values) == 0 {
		return decimal.Zero, decimal.Zero
	}
	n := decimal.NewFromInt(int64(len(values)))
	mean = Sum(values).Div(n)
	sq := decimal.Zero
	for _, v := range values {
		d := v.Sub(mean)
		sq = sq.Add(d.Mul(d))
	}
	return mean, sq.Div(n)
}

// MeanVariance is exported for detectors that bucket their own values.
func MeanVariance(values []decimal.Decimal) (mean, variance decimal.Decimal) {
	return meanVariance(values)
}

// Sum adds values.
func Sum(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
