// Package slug maps place names to URL-safe identifiers and back.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes accented characters and strips the combining marks,
// so "Śrī" folds to "Sri" instead of being dropped by the character filter.
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ToSlug converts a place name to a URL slug: ASCII-folded, lowercased,
// whitespace runs collapsed to single hyphens, anything outside [a-z0-9-]
// removed. Idempotent: ToSlug(ToSlug(x)) == ToSlug(x).
func ToSlug(name string) string {
	folded, _, err := transform.String(asciiFold, name)
	if err != nil {
		folded = name
	}

	lower := strings.ToLower(strings.TrimSpace(folded))
	joined := strings.Join(strings.Fields(lower), "-")

	var b strings.Builder
	b.Grow(len(joined))
	for _, r := range joined {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FromSlug converts a slug back to query text by replacing hyphens with
// spaces. This is a search heuristic, not a true inverse: distinct names can
// collapse to the same slug.
func FromSlug(s string) string {
	return strings.ReplaceAll(s, "-", " ")
}
