package id

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// namespace scopes transaction IDs so they never collide with other v5 UUIDs.
var namespace = uuid.MustParse("6f1c2b9e-4d0a-5e37-9b1f-3a8c7d2e5f40")

// Transaction returns a stable ID for an imported row. Re-importing the same
// file into the same account yields the same IDs.
func Transaction(accountID string, line int, raw string) string {
	name := accountID + "\x00" + strconv.Itoa(line) + "\x00" + raw
	return uuid.NewSHA1(namespace, []byte(name)).String()
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Insight returns an ID like "insight-recurring-subscription-netflix".
// An empty key yields "insight-<kind>".
func Insight(kind, key string) string {
	base := "insight-" + Slug(kind)
	if s := Slug(key); s != "" {
		return base + "-" + s
	}
	return base
}

// Slug lowercases s and collapses runs of non-alphanumerics into single dashes.
func Slug(s string) string {
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// ParseTransaction validates a transaction ID.
func ParseTransaction(s string) (uuid.UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("invalid transaction ID %q: %w", s, err)
	}
	return u, nil
}
