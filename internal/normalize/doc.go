// Package normalize turns raw document text into canonical text: a stream of
// lowercase ASCII letters and digits with no whitespace or punctuation.
//
// Normalization is total. Characters with an ASCII approximation are
// transliterated; everything else outside the canonical alphabet is dropped.
// English stopword removal and Porter stemming are optional steps that make
// fingerprints less sensitive to light rewording.
package normalize
