package importer

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"

	"github.com/spendsight/spendsight/internal/model"
)

// fallbackDateLayouts are tried in order when the generic parse fails.
var fallbackDateLayouts = []string{
	"01/02/2006",
	"2006-01-02",
	"01-02-2006",
}

// ParseDate parses a statement date. The generic parser runs first, then the
// explicit layouts. Dates without an offset are placed in loc.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := dateparse.ParseIn(s, loc); err == nil {
		return t, true
	}
	for _, layout := range fallbackDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseAmount parses a money string. Currency symbols, thousands separators and
// whitespace are ignored and a parenthesized value is negative. Unparseable
// input yields zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+':
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		return d.Abs().Neg()
	}
	return d
}

var expenseTypeKeywords = []string{"debit", "withdrawal", "payment"}

// typeFromKeyword classifies an explicit type-column value.
func typeFromKeyword(v string) model.TransactionType {
	lv := strings.ToLower(v)
	for _, kw := range expenseTypeKeywords {
		if strings.Contains(lv, kw) {
			return model.TypeExpense
		}
	}
	return model.TypeIncome
}

// amountFields are the raw amount-related values of one row.
type amountFields struct {
	typeValue string // explicit type column, "" when absent
	amount    string // single amount column
	debit     string
	credit    string
}

// resolution is the outcome of type resolution for one row.
type resolution int

const (
	resolved resolution = iota
	dropRow
	ambiguousRow
)

// resolveType derives the transaction type and absolute amount for a row.
// Precedence: explicit type column, then a debit/credit pair, then a single
// signed amount.
func resolveType(s Schema, f amountFields) (model.TransactionType, decimal.Decimal, resolution) {
	switch {
	case s.TypeColumn != "":
		amt := ParseAmount(f.amount)
		if amt.IsZero() {
			return "", decimal.Zero, dropRow
		}
		return typeFromKeyword(f.typeValue), amt.Abs(), resolved

	case s.HasDebitCredit():
		debit := ParseAmount(f.debit).Abs()
		credit := ParseAmount(f.credit).Abs()
		switch {
		case debit.IsPositive() && credit.IsPositive():
			return "", decimal.Zero, ambiguousRow
		case debit.IsPositive():
			return model.TypeExpense, debit, resolved
		case credit.IsPositive():
			return model.TypeIncome, credit, resolved
		default:
			return "", decimal.Zero, dropRow
		}

	default:
		amt := ParseAmount(f.amount)
		if amt.IsZero() {
			return "", decimal.Zero, dropRow
		}
		if amt.IsNegative() {
			return model.TypeExpense, amt.Abs(), resolved
		}
		return model.TypeIncome, amt, resolved
	}
}

var (
	leadingTypeRe = regexp.MustCompile(`(?i)^\s*(DEBIT|CREDIT|ACH|CHECK|TRANSFER|PAYMENT|WITHDRAWAL|DEPOSIT)\b\s*`)
	longDigitsRe  = regexp.MustCompile(`\d{4,}`)
	referenceRe   = regexp.MustCompile(`#\S*`)
)

const merchantTokens = 3

// ExtractMerchant derives a short merchant name from a bank description.
func ExtractMerchant(description string) string {
	s := leadingTypeRe.ReplaceAllString(description, "")
	s = referenceRe.ReplaceAllString(s, " ")
	s = longDigitsRe.ReplaceAllString(s, " ")
	words := strings.Fields(s)
	if len(words) > merchantTokens {
		words = words[:merchantTokens]
	}
	return strings.Join(words, " ")
}
