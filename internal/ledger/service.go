// Package ledger stores canonical transactions in a single CSV file so the
// analysis commands can run over everything imported so far.
package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spendsight/spendsight/internal/model"
)

// Service reads and appends to one ledger file.
type Service struct {
	path     string
	loc      *time.Location
	accounts AccountChecker
}

// NewService creates a ledger Service whose dates are read back as days in
// loc. loc and accounts may be nil.
func NewService(path string, loc *time.Location, accounts AccountChecker) *Service {
	return &Service{path: path, loc: loc, accounts: accounts}
}

// ReadAll returns every stored transaction. A missing file is an empty ledger.
func (s *Service) ReadAll() ([]model.Transaction, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", s.path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f, s.loc)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", s.path, err)
	}
	return txns, nil
}

// Merge appends the transactions whose IDs are not already stored and returns
// how many were added. The combined ledger is validated before anything is
// written; on failure the file is left untouched.
func (s *Service) Merge(txns []model.Transaction) (int, error) {
	existing, err := s.ReadAll()
	if err != nil {
		return 0, err
	}

	stored := make(map[string]bool, len(existing))
	for _, t := range existing {
		stored[t.ID] = true
	}
	var fresh []model.Transaction
	for _, t := range txns {
		if stored[t.ID] {
			continue
		}
		stored[t.ID] = true
		fresh = append(fresh, t)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	all := append(existing, fresh...)
	if verrs := ValidateTransactions(all, s.accounts); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return 0, fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return 0, fmt.Errorf("creating ledger dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return 0, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return 0, fmt.Errorf("writing header: %w", err)
		}
	}
	if err := AppendTransactions(f, fresh); err != nil {
		return 0, fmt.Errorf("appending transactions: %w", err)
	}
	return len(fresh), nil
}
