// Package slug derives URL-safe names from free-form titles.
package slug

import (
	"strings"
	"unicode"
)

const maxLength = 200

// Make sanitizes s into a lowercase URL-safe slug: letters and digits are
// kept (lowercased), every other run of characters collapses into a single
// hyphen, leading/trailing hyphens are trimmed.
func Make(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevHyphen := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			prevHyphen = false
		default:
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	out := strings.TrimRight(b.String(), "-")
	if len(out) > maxLength {
		out = strings.TrimRight(out[:maxLength], "-")
	}
	return out
}
