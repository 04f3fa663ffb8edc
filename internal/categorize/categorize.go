// Package categorize assigns a category to a transaction from its text.
//
// Rules are evaluated top to bottom and the first rule with a keyword contained
// in the lowercased "description merchant" text wins. Order is significant:
// "gas" under transportation shadows "gas utility" under utilities.
package categorize

import (
	"strings"

	"github.com/spendsight/spendsight/internal/model"
)

// Rule maps a keyword set to a category.
type Rule struct {
	Category model.Category
	Keywords []string
}

// Matches reports whether any keyword occurs in the lowercased text.
func (r Rule) Matches(text string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

var defaultRules = []Rule{
	{model.CategoryFood, []string{"restaurant", "food", "cafe", "coffee", "pizza", "burger", "grocery", "supermarket", "market", "starbucks"}},
	{model.CategoryTransportation, []string{"uber", "lyft", "gas", "fuel", "parking", "transit", "metro", "bus"}},
	{model.CategoryEntertainment, []string{"netflix", "spotify", "hulu", "disney", "hbo", "movie", "theater", "concert", "game"}},
	{model.CategoryUtilities, []string{"electric", "water", "gas utility", "internet", "phone", "cable"}},
	{model.CategoryRent, []string{"rent", "lease", "mortgage"}},
	{model.CategoryHealthcare, []string{"pharmacy", "doctor", "hospital", "medical", "health"}},
	{model.CategoryShopping, []string{"amazon", "walmart", "target", "store", "shop"}},
	{model.CategorySalary, []string{"salary", "payroll", "direct deposit", "payment received"}},
	{model.CategoryEducation, []string{"tuition", "university", "college", "school", "textbook", "coursera", "udemy"}},
	{model.CategoryInvestment, []string{"brokerage", "dividend", "vanguard", "fidelity", "schwab", "robinhood", "invest"}},
}

// Rules returns a copy of the ordered rule table.
func Rules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}

// Categorize returns the first matching category, or other. It never fails.
func Categorize(description, merchantName string) model.Category {
	return CategorizeWith(defaultRules, description, merchantName)
}

// CategorizeWith evaluates a custom rule table.
func CategorizeWith(rules []Rule, description, merchantName string) model.Category {
	text := strings.ToLower(description + " " + merchantName)
	for _, r := range rules {
		if r.Matches(text) {
			return r.Category
		}
	}
	return model.CategoryOther
}
