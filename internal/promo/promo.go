// Package promo holds the discount-code registry and the loaders that can
// populate it from a codes file.
package promo

import (
	"context"
	"strings"
)

// Loader reads a discount-codes file and returns the code → percent mapping.
// Files contain one CODE=PCT entry per line; blank lines and lines starting
// with '#' are ignored.
type Loader interface {
	Load(ctx context.Context, path string) (map[string]int, error)
}

// Registry maps discount codes to their percentage. Lookup is
// case-insensitive; codes are stored in canonical upper-case form.
type Registry struct {
	codes map[string]int
}

// DefaultCodes returns the built-in discount codes.
func DefaultCodes() map[string]int {
	return map[string]int{
		"FIRST10":   10,
		"STUDENT15": 15,
		"FAMILY20":  20,
		"VIP25":     25,
	}
}

// NewRegistry creates a registry from the given code → percent mapping.
// Codes are canonicalised to upper case.
func NewRegistry(codes map[string]int) *Registry {
	canonical := make(map[string]int, len(codes))
	for code, pct := range codes {
		canonical[strings.ToUpper(strings.TrimSpace(code))] = pct
	}
	return &Registry{codes: canonical}
}

// NewDefaultRegistry creates a registry holding the built-in codes.
func NewDefaultRegistry() *Registry {
	return NewRegistry(DefaultCodes())
}

// Lookup returns the discount percentage for code, matching
// case-insensitively. The second return value reports whether the code is
// recognised.
func (r *Registry) Lookup(code string) (int, bool) {
	pct, ok := r.codes[strings.ToUpper(strings.TrimSpace(code))]
	return pct, ok
}

// Size returns the number of registered codes.
func (r *Registry) Size() int {
	return len(r.codes)
}
