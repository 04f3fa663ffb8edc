package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spendsight/spendsight/internal/model"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		desc, merchant string
		want           model.Category
	}{
		{"STARBUCKS STORE #12345", "Starbucks", model.CategoryFood},
		{"NETFLIX.COM", "", model.CategoryEntertainment},
		{"RANDOM XYZ CORP", "", model.CategoryOther},
		{"WHOLE FOODS MARKET", "WHOLE FOODS MARKET", model.CategoryFood},
		{"UBER TRIP HELP.UBER.COM", "", model.CategoryTransportation},
		{"SHELL OIL 5744 FUEL", "", model.CategoryTransportation},
		{"COMCAST CABLE", "", model.CategoryUtilities},
		{"PROPERTY MGMT LEASE", "", model.CategoryRent},
		{"CVS PHARMACY", "", model.CategoryHealthcare},
		{"AMAZON MKTPLACE", "", model.CategoryShopping},
		{"ACME INC PAYROLL", "", model.CategorySalary},
		{"STATE UNIVERSITY BURSAR", "", model.CategoryEducation},
		{"VANGUARD BUY", "", model.CategoryInvestment},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.desc, tt.merchant), "Categorize(%q, %q)", tt.desc, tt.merchant)
	}
}

func TestCategorize_Precedence(t *testing.T) {
	// "gas" (transportation) is checked before "gas utility" (utilities).
	assert.Equal(t, model.CategoryTransportation, Categorize("CITY GAS UTILITY", ""))
	// food is checked before shopping even though "store" matches shopping.
	assert.Equal(t, model.CategoryFood, Categorize("CORNER STORE COFFEE", ""))
	// "rent" inside "parent" still matches; rules are plain substring tests.
	assert.Equal(t, model.CategoryRent, Categorize("PARENT PORTAL", ""))
}

func TestCategorize_MerchantOnly(t *testing.T) {
	assert.Equal(t, model.CategoryEntertainment, Categorize("POS 4411", "Spotify"))
}

func TestCategorize_Deterministic(t *testing.T) {
	for i := 0; i < 5; i++ {
		assert.Equal(t, Categorize("HULU 877", "HULU"), Categorize("HULU 877", "HULU"))
	}
}

func TestCategorize_Empty(t *testing.T) {
	assert.Equal(t, model.CategoryOther, Categorize("", ""))
}

func TestRules_OrderAndCopy(t *testing.T) {
	rules := Rules()
	assert.Equal(t, model.CategoryFood, rules[0].Category)
	assert.Equal(t, model.CategorySalary, rules[7].Category)

	rules[0] = Rule{Category: model.CategoryRent}
	assert.Equal(t, model.CategoryFood, Rules()[0].Category)
}

func TestCategorizeWith_CustomRules(t *testing.T) {
	rules := []Rule{{Category: model.CategoryInvestment, Keywords: []string{"coinbase"}}}
	assert.Equal(t, model.CategoryInvestment, CategorizeWith(rules, "COINBASE.COM", ""))
	assert.Equal(t, model.CategoryOther, CategorizeWith(rules, "STARBUCKS", ""))
}
