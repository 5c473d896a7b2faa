// Package textnorm canonicalizes human-entered names so that spellings that
// differ only in accents, case, punctuation or spacing compare equal.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// newFolder decomposes, drops combining marks and lowercases.
// Lowercasing runs after decomposition so compatibility forms such as "ℌ"
// end up lowercase too. A chain keeps internal buffers, so each call builds its own.
func newFolder() transform.Transformer {
	return transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(unicode.ToLower),
	)
}

// Normalize returns the canonical comparable form of s.
// Punctuation becomes a separator rather than being deleted, so
// "Bahía(Samborombón)" keeps its two words apart.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(newFolder(), s)
	if err != nil {
		// transform only fails on invalid input state; fall back to plain lowercase.
		folded = strings.ToLower(s)
	}
	mapped := strings.Map(func(r rune) rune {
		if keep(r) {
			return r
		}
		return ' '
	}, folded)
	return strings.Join(strings.Fields(mapped), " ")
}

// NormalizeValue normalizes strings and treats every other value as absent.
func NormalizeValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return Normalize(s)
}

func keep(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '_'
}
