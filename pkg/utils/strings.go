package utils

import (
	"strings"
	"unicode"
)

// SafeText drops invalid UTF-8 sequences and control characters so the
// result is safe to embed in prompts and mail bodies.
func SafeText(s string) string {
	s = strings.ToValidUTF8(s, "")
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
}
