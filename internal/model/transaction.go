package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType records the direction of money movement.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Category is the fixed spending/income classification.
type Category string

const (
	CategoryFood           Category = "food"
	CategoryTransportation Category = "transportation"
	CategoryEntertainment  Category = "entertainment"
	CategoryUtilities      Category = "utilities"
	CategoryRent           Category = "rent"
	CategoryHealthcare     Category = "healthcare"
	CategoryShopping       Category = "shopping"
	CategorySalary         Category = "salary"
	CategoryEducation      Category = "education"
	CategoryInvestment     Category = "investment"
	CategoryOther          Category = "other"
)

var allCategories = []Category{
	CategoryFood,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryRent,
	CategoryHealthcare,
	CategoryShopping,
	CategorySalary,
	CategoryEducation,
	CategoryInvestment,
	CategoryOther,
}

// AllCategories returns every category in canonical order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Transaction is the normalized, bank-independent transaction record.
type Transaction struct {
	ID           string
	AccountID    string
	Date         time.Time
	Description  string
	Amount       decimal.Decimal // always >= 0; direction is in Type
	Type         TransactionType
	Category     Category
	IsRecurring  bool // set by pattern analysis only, never by import
	MerchantName string
	Location     string
	Notes        string
}

// IsExpense reports whether the transaction is money out.
func (t Transaction) IsExpense() bool { return t.Type == TypeExpense }

// IsIncome reports whether the transaction is money in.
func (t Transaction) IsIncome() bool { return t.Type == TypeIncome }

// GroupKey returns the merchant name, falling back to the description.
func (t Transaction) GroupKey() string {
	if t.MerchantName != "" {
		return t.MerchantName
	}
	return t.Description
}
