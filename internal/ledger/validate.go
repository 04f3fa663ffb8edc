package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/spendsight/spendsight/internal/id"
	"github.com/spendsight/spendsight/internal/model"
)

// Rules checked by ValidateTransactions.
const (
	RuleDescription = "description"
	RuleAmount      = "amount"
	RuleType        = "type"
	RuleCategory    = "category"
	RuleUniqueID    = "unique-id"
	RuleAccount     = "account"
)

// ValidationError describes a single rule violation.
type ValidationError struct {
	Rule          string
	TransactionID string
	Description   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Rule, e.TransactionID, e.Description)
}

// AccountChecker tests whether an account ID is configured.
type AccountChecker interface {
	Exists(id string) bool
}

var hundred = decimal.NewFromInt(100)

// ValidateTransactions checks the canonical transaction rules over a whole
// ledger. accounts may be nil, in which case account references are not
// checked.
func ValidateTransactions(txns []model.Transaction, accounts AccountChecker) []ValidationError {
	var errs []ValidationError
	add := func(rule, txnID, format string, args ...any) {
		errs = append(errs, ValidationError{Rule: rule, TransactionID: txnID, Description: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]bool, len(txns))
	for _, t := range txns {
		if t.Description == "" {
			add(RuleDescription, t.ID, "description is empty")
		}

		if t.Amount.IsNegative() {
			add(RuleAmount, t.ID, "amount %s is negative", t.Amount)
		}
		if scaled := t.Amount.Mul(hundred); !scaled.Equal(scaled.Truncate(0)) {
			add(RuleAmount, t.ID, "amount %s has more than 2 decimal places", t.Amount)
		}

		if !t.Type.Valid() {
			add(RuleType, t.ID, "unknown type %q", t.Type)
		}
		if !t.Category.Valid() {
			add(RuleCategory, t.ID, "unknown category %q", t.Category)
		}

		if _, err := id.ParseTransaction(t.ID); t.ID != "" && err != nil {
			add(RuleUniqueID, t.ID, "%v", err)
		}
		switch {
		case t.ID == "":
			add(RuleUniqueID, t.ID, "id is empty")
		case seen[t.ID]:
			add(RuleUniqueID, t.ID, "duplicate id")
		}
		seen[t.ID] = true

		if accounts != nil && !accounts.Exists(t.AccountID) {
			add(RuleAccount, t.ID, "unknown account %q", t.AccountID)
		}
	}
	return errs
}
