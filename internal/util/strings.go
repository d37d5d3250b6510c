package util

import (
	"strings"

	"golang.org/x/text/width"
)

var dashVariants = strings.NewReplacer(
	"‐", "-", // hyphen
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
)

// NormalizeName canonicalizes a display name for cross-dataset matching:
// full-width forms are narrowed, case is folded, dash variants unify to a
// plain hyphen, and runs of whitespace collapse to a single space.
func NormalizeName(s string) string {
	s = width.Narrow.String(s)
	s = strings.ToLower(s)
	s = dashVariants.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
