package importer

import (
	"strings"
)

// Schema maps one bank's export columns to canonical transaction fields.
type Schema struct {
	ID                 string
	Name               string
	DateColumns        []string
	DescriptionColumns []string
	// AmountColumns is either a single signed amount column or a
	// debit/credit pair, in that order.
	AmountColumns []string
	TypeColumn    string
	// Header is the canonical header row of the bank's export.
	Header  []string
	Aliases []string
}

// HasDebitCredit reports whether amounts come as a debit/credit column pair.
func (s Schema) HasDebitCredit() bool { return len(s.AmountColumns) == 2 }

// Catalog holds the known schemas in detection precedence order.
type Catalog struct {
	schemas []Schema
	byKey   map[string]int
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byKey: make(map[string]int)}
}

// Register adds a schema. Panics on a duplicate ID or alias.
func (c *Catalog) Register(s Schema) {
	keys := append([]string{s.ID}, s.Aliases...)
	for _, k := range keys {
		k = normalizeHint(k)
		if _, ok := c.byKey[k]; ok {
			panic("duplicate schema key: " + k)
		}
	}
	c.schemas = append(c.schemas, s)
	for _, k := range keys {
		c.byKey[normalizeHint(k)] = len(c.schemas) - 1
	}
}

// Get returns the schema for a bank identifier or alias. Matching ignores case,
// whitespace, underscores and hyphens.
func (c *Catalog) Get(name string) (Schema, bool) {
	i, ok := c.byKey[normalizeHint(name)]
	if !ok {
		return Schema{}, false
	}
	return c.schemas[i], true
}

// All returns the schemas in registration order.
func (c *Catalog) All() []Schema {
	out := make([]Schema, len(c.schemas))
	copy(out, c.schemas)
	return out
}

func normalizeHint(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '_', '-':
			return -1
		}
		return r
	}, strings.ToLower(s))
}

// Schema IDs of the built-in catalog.
const (
	BankOfAmerica   = "bank_of_america"
	Chase           = "chase"
	WellsFargo      = "wells_fargo"
	Citi            = "citi"
	CapitalOne      = "capital_one"
	AmericanExpress = "american_express"
)

// DefaultCatalog returns a catalog with every supported bank.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	c.Register(Schema{
		ID:                 BankOfAmerica,
		Name:               "Bank of America",
		DateColumns:        []string{"Posted Date", "Date"},
		DescriptionColumns: []string{"Payee", "Description"},
		AmountColumns:      []string{"Amount"},
		Header:             []string{"Posted Date", "Reference Number", "Payee", "Address", "Amount"},
		Aliases:            []string{"boa", "bofa"},
	})
	c.Register(Schema{
		ID:                 Chase,
		Name:               "Chase",
		DateColumns:        []string{"Posting Date", "Transaction Date"},
		DescriptionColumns: []string{"Description"},
		AmountColumns:      []string{"Amount"},
		TypeColumn:         "Type",
		Header:             []string{"Details", "Posting Date", "Description", "Amount", "Type", "Balance", "Check or Slip #"},
		Aliases:            []string{"jpmorgan", "jpmorganchase"},
	})
	c.Register(Schema{
		ID:                 WellsFargo,
		Name:               "Wells Fargo",
		DateColumns:        []string{"Date"},
		DescriptionColumns: []string{"Description"},
		AmountColumns:      []string{"Amount"},
		Header:             []string{"Date", "Amount", "*", "Check Number", "Description"},
		Aliases:            []string{"wells", "wf"},
	})
	c.Register(Schema{
		ID:                 Citi,
		Name:               "Citi",
		DateColumns:        []string{"Date"},
		DescriptionColumns: []string{"Description"},
		AmountColumns:      []string{"Debit", "Credit"},
		Header:             []string{"Status", "Date", "Description", "Debit", "Credit"},
		Aliases:            []string{"citibank"},
	})
	c.Register(Schema{
		ID:                 CapitalOne,
		Name:               "Capital One",
		DateColumns:        []string{"Transaction Date", "Posted Date"},
		DescriptionColumns: []string{"Description"},
		AmountColumns:      []string{"Debit", "Credit"},
		Header:             []string{"Transaction Date", "Posted Date", "Card No.", "Description", "Category", "Debit", "Credit"},
		Aliases:            []string{"capone"},
	})
	c.Register(Schema{
		ID:                 AmericanExpress,
		Name:               "American Express",
		DateColumns:        []string{"Date"},
		DescriptionColumns: []string{"Description"},
		AmountColumns:      []string{"Amount"},
		Header:             []string{"Date", "Description", "Card Member", "Account #", "Amount", "Extended Details"},
		Aliases:            []string{"amex"},
	})
	return c
}
