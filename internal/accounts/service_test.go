package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendsight/spendsight/internal/config"
	"github.com/spendsight/spendsight/internal/model"
)

func sample() []config.AccountConfig {
	return []config.AccountConfig{
		{ID: "chk-1234", Name: "Everyday Checking", Institution: "chase", LastFour: "1234"},
		{ID: "cc-9876", Name: "Sapphire", Institution: "chase", LastFour: "9876"},
		{ID: "amex-gold", Institution: "american_express"},
	}
}

func TestFromConfig(t *testing.T) {
	svc, err := FromConfig(sample())
	require.NoError(t, err)
	assert.Len(t, svc.All(), 3)

	acct, ok := svc.Get("chk-1234")
	assert.True(t, ok)
	assert.Equal(t, "Everyday Checking", acct.Name)
	assert.Equal(t, "1234", acct.LastFour)

	amex, ok := svc.Get("amex-gold")
	require.True(t, ok)
	assert.Equal(t, "amex-gold", amex.Name, "name defaults to the ID")

	assert.True(t, svc.Exists("cc-9876"))
	assert.False(t, svc.Exists("nope"))
}

func TestFromConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  []config.AccountConfig
		want string
	}{
		{"missing id", []config.AccountConfig{{Institution: "chase"}}, "missing id"},
		{"missing institution", []config.AccountConfig{{ID: "x"}}, "missing institution"},
		{"duplicate", []config.AccountConfig{{ID: "x", Institution: "chase"}, {ID: "x", Institution: "citi"}}, "duplicate id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromConfig(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestForInstitution(t *testing.T) {
	svc, err := FromConfig(sample())
	require.NoError(t, err)

	acct, ok := svc.ForInstitution("chase")
	require.True(t, ok)
	assert.Equal(t, "chk-1234", acct.ID, "first configured account wins")

	acct, ok = svc.ForInstitution("AMERICAN_EXPRESS")
	require.True(t, ok)
	assert.Equal(t, "amex-gold", acct.ID)

	_, ok = svc.ForInstitution("citi")
	assert.False(t, ok)

	assert.Len(t, svc.ByInstitution("chase"), 2)
}

func TestNewService_DropsDuplicateIDs(t *testing.T) {
	svc := NewService([]model.Account{
		{ID: "a", Name: "first"},
		{ID: "a", Name: "second"},
	})
	assert.Len(t, svc.All(), 1)
	acct, _ := svc.Get("a")
	assert.Equal(t, "first", acct.Name)
}
