package service

import (
	"strings"
	"unicode/utf8"
)

// sanitizeMessage drops invalid UTF-8 sequences and NUL bytes, both of which
// PostgreSQL rejects in text columns.
func sanitizeMessage(s string) string {
	if utf8.ValidString(s) && !strings.ContainsRune(s, 0) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if (r == utf8.RuneError && size == 1) || r == 0 {
			continue
		}
		result.WriteRune(r)
	}

	return result.String()
}
