// Package textnorm decides whether two journal texts are meaningfully
// different. Cosmetic edits (spacing, capitalization, punctuation) must not
// count as divergence when the sync protocol looks for collisions.
package textnorm

import (
	"strings"
	"unicode"
)

// Normalize strips all whitespace and punctuation and lower-cases the rest.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsSpace(r) || unicode.IsPunct(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Equivalent reports whether two texts normalize to the same value.
func Equivalent(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
