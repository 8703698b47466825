package fol

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeIdentifier lowers an identifier to ASCII snake_case: accents are
// stripped, whitespace runs become single underscores, and any remaining
// character outside [a-z0-9_] is dropped. Callers opt in; the core never
// rewrites names on its own.
func NormalizeIdentifier(s string) string {
	s = norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark left over from NFD decomposition
		case unicode.IsSpace(r):
			inSpace = true
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			if inSpace && b.Len() > 0 {
				b.WriteByte('_')
			}
			inSpace = false
			b.WriteRune(unicode.ToLower(r))
		}
	}
	out := b.String()
	// non-ASCII letters that survived ToLower but not the identifier set
	return strings.Map(func(r rune) rune {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, out)
}
