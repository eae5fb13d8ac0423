package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letterFolds covers letters that have no canonical decomposition to ASCII.
var letterFolds = strings.NewReplacer(
	"ß", "ss", "ẞ", "SS",
	"æ", "ae", "Æ", "AE",
	"œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O",
	"ł", "l", "Ł", "L",
	"đ", "d", "Đ", "D",
	"ð", "d", "Ð", "D",
	"þ", "th", "Þ", "TH",
	"ı", "i",
)

// Transliterate approximates text in ASCII. Compatibility decomposition splits
// accented letters and ligatures, combining marks are dropped, and a small fold
// table handles the remaining Latin letters. Runes with no approximation are
// left in place for Collapse to remove.
func Transliterate(text string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		out = text
	}
	return letterFolds.Replace(out)
}
