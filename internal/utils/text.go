package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CleanUTF8 drops invalid UTF-8 sequences and control characters other than
// tab and newlines. Postgres rejects NUL bytes in text columns. The boolean
// reports whether anything was dropped.
func CleanUTF8(input string) (string, bool) {
	if utf8.ValidString(input) && strings.IndexFunc(input, isDroppedControl) < 0 {
		return input, false
	}

	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])
		i += size
		if (r == utf8.RuneError && size == 1) || isDroppedControl(r) {
			continue
		}
		b.WriteRune(r)
	}

	return b.String(), true
}

// CleanText is CleanUTF8 followed by trimming surrounding whitespace. Used on
// every free-text field a user submits.
func CleanText(input string) string {
	cleaned, _ := CleanUTF8(input)
	return strings.TrimSpace(cleaned)
}

func isDroppedControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t'
}
