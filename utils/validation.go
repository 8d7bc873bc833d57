package utils

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// PermutationSeparator joins sorted symbols into a permutation key.
const PermutationSeparator = ">"

// PermutationKey identifies a symbol combination independent of order:
// the symbols sorted and joined with PermutationSeparator.
func PermutationKey(symbols []string) string {
	sorted := make([]string, len(symbols))
	copy(sorted, symbols)
	sort.Strings(sorted)
	return strings.Join(sorted, PermutationSeparator)
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// GenerateRequestID creates a unique request identifier using UUID v4.
func GenerateRequestID() string {
	return uuid.New().String()
}
