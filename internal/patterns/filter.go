package patterns

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendsight/spendsight/internal/model"
)

// Predicate selects transactions.
type Predicate func(model.Transaction) bool

func filter(txns []model.Transaction, preds ...Predicate) []model.Transaction {
	var out []model.Transaction
outer:
	for _, t := range txns {
		for _, p := range preds {
			if !p(t) {
				continue outer
			}
		}
		out = append(out, t)
	}
	return out
}

// Filter returns the transactions matching every predicate, in input order.
func Filter(txns []model.Transaction, preds ...Predicate) []model.Transaction {
	return filter(txns, preds...)
}

func ofType(typ model.TransactionType) Predicate {
	return func(t model.Transaction) bool { return t.Type == typ }
}

// Expenses selects money out.
func Expenses() Predicate { return model.Transaction.IsExpense }

// Income selects money in.
func Income() Predicate { return model.Transaction.IsIncome }

// InCategory selects one category.
func InCategory(c model.Category) Predicate {
	return func(t model.Transaction) bool { return t.Category == c }
}

// Since selects transactions dated at or after start.
func Since(start time.Time) Predicate {
	return func(t model.Transaction) bool { return !t.Date.Before(start) }
}

// Between selects transactions in the closed interval [start, end].
func Between(start, end time.Time) Predicate {
	return func(t model.Transaction) bool {
		return !t.Date.Before(start) && !t.Date.After(end)
	}
}

// Total sums the amounts of txns.
func Total(txns []model.Transaction) decimal.Decimal {
	return Sum(amounts(txns))
}

// DaysBefore returns now minus the given number of days.
func DaysBefore(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

// MonthStart returns midnight on the first of now's month, in now's zone.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
