package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName canonicalizes a display name for matching. The value is
// lowercased, trimmed, decomposed (NFD) with combining marks removed, and
// finally stripped of everything outside [a-z0-9].
func NormalizeName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return ""
	}
	// transform.Chain is stateful, so a fresh chain is built per call.
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(chain, name)
	if err != nil {
		decomposed = name
	}
	var b strings.Builder
	b.Grow(len(decomposed))
	for i := 0; i < len(decomposed); i++ {
		c := decomposed[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// FirstToken returns the first whitespace-delimited token of value, lowercased.
func FirstToken(value string) string {
	fields := strings.Fields(strings.ToLower(value))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
