package onboarding

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// RawRow is one decoded spreadsheet row keyed by the header label as authored.
type RawRow map[string]string

// Candidate is a RawRow resolved to canonical fields.
type Candidate struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Credits  int
	// CreditsFromRow is false when Credits came from the batch default.
	CreditsFromRow bool
}

var (
	nameAliases     = []string{"Name", "name", "NAME", "Full Name", "full name"}
	emailAliases    = []string{"Email", "email", "EMAIL"}
	passwordAliases = []string{"Password", "password", "PASSWORD"}
	phoneAliases    = []string{"Phone", "phone", "PHONE", "Mobile", "mobile"}
	creditsAliases  = []string{"Credits", "credits", "CREDITS", "Credit", "credit"}
)

// ValidationError lists the required fields a row is missing.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Normalize resolves a row against the accepted column aliases. A credits cell that is
// present and parses to a non-negative integer wins over defaultCredits.
func Normalize(row RawRow, defaultCredits int) (Candidate, error) {
	c := Candidate{
		Name:     lookup(row, nameAliases),
		Email:    lookup(row, emailAliases),
		Password: lookup(row, passwordAliases),
		Phone:    lookup(row, phoneAliases),
	}

	if credits, ok := parseCredits(lookup(row, creditsAliases)); ok {
		c.Credits = credits
		c.CreditsFromRow = true
	} else if defaultCredits > 0 {
		c.Credits = defaultCredits
	}

	var missing []string
	if c.Name == "" {
		missing = append(missing, "name")
	}
	if c.Email == "" {
		missing = append(missing, "email")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return c, &ValidationError{Missing: missing}
	}

	return c, nil
}

func lookup(row RawRow, aliases []string) string {
	for _, alias := range aliases {
		if v := strings.TrimSpace(row[alias]); v != "" {
			return v
		}
	}

	// Headers authored with other casing or stray spaces, in a stable order.
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, alias := range aliases {
		for _, k := range keys {
			if !strings.EqualFold(strings.TrimSpace(k), alias) {
				continue
			}
			if v := strings.TrimSpace(row[k]); v != "" {
				return v
			}
		}
	}
	return ""
}

func parseCredits(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, n >= 0
	}
	// Spreadsheet numbers often arrive as "5.0".
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
