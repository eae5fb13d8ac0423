package normalize

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	porterstemmer "github.com/blevesearch/go-porterstemmer"

	"textprint/internal/textutil"
)

// Func maps raw text to canonical text. Implementations must be pure.
type Func func(raw string) string

// Options selects the optional linguistic steps.
type Options struct {
	Transliterate bool
	Stopwords     bool
	Stem          bool
}

// DefaultOptions enables every step.
func DefaultOptions() Options {
	return Options{Transliterate: true, Stopwords: true, Stem: true}
}

// New builds a normalizer for opts.
func New(opts Options) Func {
	return func(raw string) string {
		return Collapse(sanitize(raw, opts))
	}
}

// Default is New(DefaultOptions()).
func Default() Func {
	return New(DefaultOptions())
}

// Sanitize runs the word-level steps selected by opts and returns the
// surviving words joined by single spaces, lowercased.
func Sanitize(raw string, opts Options) string {
	return sanitize(raw, opts)
}

func sanitize(raw string, opts Options) string {
	text := strings.TrimSpace(raw)
	if opts.Transliterate {
		text = Transliterate(text)
	}
	words := textutil.Words(text)
	out := words[:0]
	for _, word := range words {
		word = strings.ToLower(word)
		if opts.Stopwords && IsStopword(word) {
			continue
		}
		if opts.Stem {
			word = porterstemmer.StemString(word)
		}
		if word == "" {
			continue
		}
		out = append(out, word)
	}
	return strings.Join(out, " ")
}

// Collapse lowercases text and removes every character outside [a-z0-9].
func Collapse(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}

var stopwords = sync.OnceValue(func() analysis.TokenMap {
	tokens := analysis.NewTokenMap()
	if err := tokens.LoadBytes(en.EnglishStopWords); err != nil {
		panic(fmt.Sprintf("normalize: load english stopwords: %v", err))
	}
	return tokens
})

// IsStopword reports whether the lowercase word is an English stopword.
func IsStopword(word string) bool {
	return stopwords()[word]
}
