// Package currency resolves the Central Bank numeric currency codes used
// by SISCOMEX into ISO currency identifiers.
package currency

import "strings"

// Resolver maps an external numeric currency code to a currency
// identifier. The second return is false when the code is unknown; callers
// must leave the currency unset rather than fail the import.
type Resolver interface {
	Resolve(code string) (string, bool)
}

// Registry is a Resolver backed by an in-memory table. It stands in for
// the currency master-data collaborator.
type Registry struct {
	byCode map[string]string
}

// NewRegistry creates a registry seeded with the common trade currencies
func NewRegistry() *Registry {
	return &Registry{
		byCode: map[string]string{
			"790": "BRL",
			"220": "USD",
			"978": "EUR",
			"540": "GBP",
			"470": "JPY",
			"425": "CHF",
			"165": "CAD",
		},
	}
}

// Register adds or replaces a code mapping
func (r *Registry) Register(code, currency string) {
	r.byCode[normalize(code)] = currency
}

// Resolve looks up a currency by its numeric code
func (r *Registry) Resolve(code string) (string, bool) {
	c, ok := r.byCode[normalize(code)]
	return c, ok
}

// normalize strips whitespace and leading zeros so "0220" and "220" hit
// the same entry.
func normalize(code string) string {
	code = strings.TrimSpace(code)
	trimmed := strings.TrimLeft(code, "0")
	if trimmed == "" && code != "" {
		return "0"
	}
	return trimmed
}
