package importer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendsight/spendsight/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"$1,234.56", "1234.56"},
		{"(45.00)", "-45.00"},
		{"€10", "10"},
		{"-42.10", "-42.10"},
		{" 3 500.00 ", "3500.00"},
		{"£0.99", "0.99"},
		{"($12.00)", "-12.00"},
		{"", "0"},
		{"N/A", "0"},
		{"1.2.3", "0"},
	}
	for _, tt := range tests {
		got := ParseAmount(tt.input)
		assert.True(t, dec(tt.want).Equal(got), "ParseAmount(%q) = %s, want %s", tt.input, got, tt.want)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	for _, input := range []string{"01/03/2025", "2025-01-03", "01-03-2025", " 1/3/2025 "} {
		got, ok := ParseDate(input, time.UTC)
		require.True(t, ok, "input %q", input)
		assert.True(t, want.Equal(got), "ParseDate(%q) = %s", input, got)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "NOTADATE", "13/45/2025"} {
		_, ok := ParseDate(input, time.UTC)
		assert.False(t, ok, "input %q", input)
	}
}

func TestParseDate_Location(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	got, ok := ParseDate("2025-01-03", loc)
	require.True(t, ok)
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, 3, got.Day())
}

func TestResolveType_TypeColumn(t *testing.T) {
	s := Schema{TypeColumn: "Type", AmountColumns: []string{"Amount"}}

	typ, amt, res := resolveType(s, amountFields{typeValue: "DEBIT", amount: "-42.10"})
	assert.Equal(t, resolved, res)
	assert.Equal(t, model.TypeExpense, typ)
	assert.True(t, dec("42.10").Equal(amt))

	typ, _, _ = resolveType(s, amountFields{typeValue: "Withdrawal", amount: "10"})
	assert.Equal(t, model.TypeExpense, typ)

	typ, _, _ = resolveType(s, amountFields{typeValue: "BILL PAYMENT", amount: "10"})
	assert.Equal(t, model.TypeExpense, typ)

	typ, amt, _ = resolveType(s, amountFields{typeValue: "ACH_CREDIT", amount: "3500"})
	assert.Equal(t, model.TypeIncome, typ)
	assert.True(t, dec("3500").Equal(amt))

	_, _, res = resolveType(s, amountFields{typeValue: "DEBIT", amount: "oops"})
	assert.Equal(t, dropRow, res)
}

func TestResolveType_DebitCredit(t *testing.T) {
	s := Schema{AmountColumns: []string{"Debit", "Credit"}}

	typ, amt, res := resolveType(s, amountFields{debit: "23.50"})
	assert.Equal(t, resolved, res)
	assert.Equal(t, model.TypeExpense, typ)
	assert.True(t, dec("23.50").Equal(amt))

	typ, amt, res = resolveType(s, amountFields{credit: "250.00"})
	assert.Equal(t, resolved, res)
	assert.Equal(t, model.TypeIncome, typ)
	assert.True(t, dec("250").Equal(amt))

	typ, amt, _ = resolveType(s, amountFields{debit: "-23.50", credit: "0"})
	assert.Equal(t, model.TypeExpense, typ, "negative debit exports are still debits")
	assert.True(t, dec("23.50").Equal(amt))

	_, _, res = resolveType(s, amountFields{debit: "", credit: ""})
	assert.Equal(t, dropRow, res)

	_, _, res = resolveType(s, amountFields{debit: "10", credit: "10"})
	assert.Equal(t, ambiguousRow, res)
}

func TestResolveType_SignedAmount(t *testing.T) {
	s := Schema{AmountColumns: []string{"Amount"}}

	typ, amt, _ := resolveType(s, amountFields{amount: "-1800.00"})
	assert.Equal(t, model.TypeExpense, typ)
	assert.True(t, dec("1800").Equal(amt))

	typ, amt, _ = resolveType(s, amountFields{amount: "1200"})
	assert.Equal(t, model.TypeIncome, typ)
	assert.True(t, dec("1200").Equal(amt))

	_, _, res := resolveType(s, amountFields{amount: "0.00"})
	assert.Equal(t, dropRow, res)
}

func TestExtractMerchant(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"STARBUCKS #1", "STARBUCKS"},
		{"STARBUCKS STORE #12345", "STARBUCKS STORE"},
		{"DEBIT CARD PURCHASE WALMART SUPERCENTER", "CARD PURCHASE WALMART"},
		{"ach acme payroll 123456 ppd", "acme payroll ppd"},
		{"CHECK 1042 RENT JUNE", "RENT JUNE"},
		{"CHECKCARD 0105 SHELL", "CHECKCARD SHELL"},
		{"SPOTIFY", "SPOTIFY"},
		{"", ""},
		{"#998877", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractMerchant(tt.desc), "ExtractMerchant(%q)", tt.desc)
	}
}
