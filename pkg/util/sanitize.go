package util

import (
	"strings"
	"unicode"
)

// SanitizeName cleans a store or employee name for use as an object storage
// path segment: only letters, digits, spaces, hyphens and underscores are
// kept, the result is trimmed and internal spaces become underscores.
// The function is idempotent.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
}
