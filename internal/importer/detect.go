package importer

import "strings"

// headerProbe is the lowercased, comma-joined header row plus its width.
type headerProbe struct {
	text    string
	columns int
}

func (h headerProbe) has(subs ...string) bool {
	for _, s := range subs {
		if !strings.Contains(h.text, s) {
			return false
		}
	}
	return true
}

func (h headerProbe) hasAny(subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(h.text, s) {
			return true
		}
	}
	return false
}

// detectRule pairs a header predicate with the schema it selects.
type detectRule struct {
	schemaID string
	match    func(h headerProbe) bool
}

// detectRules are evaluated top to bottom; the first match wins.
var detectRules = []detectRule{
	{BankOfAmerica, func(h headerProbe) bool {
		return h.has("posted date", "payee")
	}},
	{Chase, func(h headerProbe) bool {
		return h.has("posting date") || h.has("type", "description")
	}},
	{WellsFargo, func(h headerProbe) bool {
		return h.has("wells") || (h.has("date", "amount") && h.columns <= 5)
	}},
	{Citi, func(h headerProbe) bool {
		return h.has("debit", "credit", "status")
	}},
	{CapitalOne, func(h headerProbe) bool {
		return h.has("transaction date") && h.hasAny("debit", "credit")
	}},
	{AmericanExpress, func(h headerProbe) bool {
		return h.hasAny("card member", "amex")
	}},
}

func probeHeader(header []string) headerProbe {
	cols := make([]string, len(header))
	for i, c := range header {
		cols[i] = strings.ToLower(strings.TrimSpace(c))
	}
	return headerProbe{text: strings.Join(cols, ","), columns: len(header)}
}

// Detect selects a schema for a header row. A non-empty hint that names a known
// bank wins; otherwise the header heuristics run in precedence order. The
// boolean is false when nothing matches and the caller must ask for a bank.
func (c *Catalog) Detect(header []string, hint string) (Schema, bool) {
	if strings.TrimSpace(hint) != "" {
		if s, ok := c.Get(hint); ok {
			return s, true
		}
	}

	probe := probeHeader(header)
	for _, r := range detectRules {
		if !r.match(probe) {
			continue
		}
		if s, ok := c.Get(r.schemaID); ok {
			return s, true
		}
	}
	return Schema{}, false
}
