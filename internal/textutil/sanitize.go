package textutil

import (
	"strings"
	"unicode"
)

// fileNameReplacer maps path separators and shell-hostile characters.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName turns a document name into a single safe path element.
// Separators and colons become dashes, other unsafe characters and control
// runes are dropped, whitespace runs collapse to one space, and leading dots
// are stripped so the result is never hidden or a parent reference.
func SanitizeFileName(name string) string {
	name = strings.Join(strings.Fields(fileNameReplacer.Replace(name)), " ")
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(strings.TrimLeft(name, "."))
}
