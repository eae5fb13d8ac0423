package winnow

import (
	"iter"
	"unicode/utf8"
)

// Gram is a chunk of canonical text tagged with its starting character offset.
type Gram struct {
	Offset int
	Text   string
}

// Split partitions text into consecutive grams of gramSize characters. The
// final gram holds the remainder and may be shorter. A non-positive gramSize
// yields nothing; callers validate it through Params.
func Split(text string, gramSize int) iter.Seq[Gram] {
	return func(yield func(Gram) bool) {
		if gramSize <= 0 {
			return
		}
		start, offset := 0, 0
		for start < len(text) {
			end := start
			for n := 0; n < gramSize && end < len(text); n++ {
				_, size := utf8.DecodeRuneInString(text[end:])
				end += size
			}
			if !yield(Gram{Offset: offset, Text: text[start:end]}) {
				return
			}
			start = end
			offset += gramSize
		}
	}
}
