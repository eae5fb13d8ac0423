package textutil

import (
	"strings"
	"unicode"
)

// Words splits text into tokens on any rune that is not a letter or digit.
// Case is preserved; callers lowercase as needed.
func Words(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// IsCanonical reports whether text consists only of lowercase ASCII letters
// and digits.
func IsCanonical(text string) bool {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
