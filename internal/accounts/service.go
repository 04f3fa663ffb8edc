// Package accounts resolves the bank accounts declared in spendsight.yaml.
package accounts

import (
	"fmt"
	"strings"

	"github.com/spendsight/spendsight/internal/config"
	"github.com/spendsight/spendsight/internal/model"
)

// Service provides in-memory lookup over the configured accounts.
type Service struct {
	accounts []model.Account
	byID     map[string]model.Account
}

// NewService creates a Service from a slice of accounts. Later duplicates of
// an ID are ignored.
func NewService(accounts []model.Account) *Service {
	byID := make(map[string]model.Account, len(accounts))
	kept := make([]model.Account, 0, len(accounts))
	for _, a := range accounts {
		if _, dup := byID[a.ID]; dup {
			continue
		}
		byID[a.ID] = a
		kept = append(kept, a)
	}
	return &Service{accounts: kept, byID: byID}
}

// FromConfig builds a Service from the accounts section of the config. Every
// account needs an ID and an institution.
func FromConfig(cfg []config.AccountConfig) (*Service, error) {
	accts := make([]model.Account, 0, len(cfg))
	seen := make(map[string]bool, len(cfg))
	for i, c := range cfg {
		if c.ID == "" {
			return nil, fmt.Errorf("account %d: missing id", i+1)
		}
		if c.Institution == "" {
			return nil, fmt.Errorf("account %q: missing institution", c.ID)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("account %q: duplicate id", c.ID)
		}
		seen[c.ID] = true
		name := c.Name
		if name == "" {
			name = c.ID
		}
		accts = append(accts, model.Account{
			ID:          c.ID,
			Name:        name,
			Institution: c.Institution,
			LastFour:    c.LastFour,
		})
	}
	return NewService(accts), nil
}

// All returns all accounts in configuration order.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(id string) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// ByInstitution returns every account held at the institution.
func (s *Service) ByInstitution(institution string) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if strings.EqualFold(a.Institution, institution) {
			result = append(result, a)
		}
	}
	return result
}

// ForInstitution returns the first account held at the institution.
func (s *Service) ForInstitution(institution string) (model.Account, bool) {
	if found := s.ByInstitution(institution); len(found) > 0 {
		return found[0], true
	}
	return model.Account{}, false
}
