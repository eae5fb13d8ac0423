package winnow

import (
	"iter"
	"slices"
)

// Fingerprint is the set of selections winnowed from one document, keyed by
// offset. The zero value is an empty fingerprint.
type Fingerprint struct {
	entries map[int]Selection
}

func (f *Fingerprint) add(sel Selection) {
	if f.entries == nil {
		f.entries = make(map[int]Selection)
	}
	f.entries[sel.Offset] = sel
}

// Len returns the number of entries.
func (f Fingerprint) Len() int {
	return len(f.entries)
}

// Contains reports whether sel is an entry of f.
func (f Fingerprint) Contains(sel Selection) bool {
	got, ok := f.entries[sel.Offset]
	return ok && got == sel
}

// Entries returns the entries ordered by offset.
func (f Fingerprint) Entries() []Selection {
	out := make([]Selection, 0, len(f.entries))
	for _, sel := range f.entries {
		out = append(out, sel)
	}
	slices.SortFunc(out, func(a, b Selection) int { return a.Offset - b.Offset })
	return out
}

// Hashes returns the distinct hash values of f in ascending order. Hashes are
// the position-independent part of a fingerprint used to compare documents.
func (f Fingerprint) Hashes() []uint64 {
	out := make([]uint64, 0, len(f.entries))
	for _, sel := range f.entries {
		out = append(out, sel.Hash)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Selections wires the pipeline stages for canonical text without validating
// p. Non-positive sizes or ratios yield an empty sequence.
func Selections(text string, p Params, fn HashFunc) iter.Seq[Selection] {
	grams := Split(text, p.GramSize)
	if p.RetentionRatio != 1 {
		grams = Sample(grams, p.RetentionRatio)
	}
	return Winnow(Windows(Hash(grams, fn), p.WindowSize))
}

// Compute fingerprints canonical text. Parameters are validated before any
// work is done; the only possible error is a *ConfigError.
func Compute(text string, p Params) (Fingerprint, error) {
	if err := p.Validate(); err != nil {
		return Fingerprint{}, err
	}
	fn, err := LookupHash(p.Hash)
	if err != nil {
		return Fingerprint{}, err
	}
	return collect(Selections(text, p, fn)), nil
}

func collect(seq iter.Seq[Selection]) Fingerprint {
	var fp Fingerprint
	for sel := range seq {
		fp.add(sel)
	}
	return fp
}

// Fingerprinter binds validated parameters and a normalizer. It holds no
// mutable state and is safe for concurrent use.
type Fingerprinter struct {
	params    Params
	hash      HashFunc
	normalize func(string) string
}

// NewFingerprinter validates p. A nil normalize passes text through
// unchanged, which is only correct for text that is already canonical.
func NewFingerprinter(p Params, normalize func(string) string) (*Fingerprinter, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	fn, err := LookupHash(p.Hash)
	if err != nil {
		return nil, err
	}
	if normalize == nil {
		normalize = func(s string) string { return s }
	}
	return &Fingerprinter{params: p, hash: fn, normalize: normalize}, nil
}

// Params returns the parameters the fingerprinter was built with.
func (f *Fingerprinter) Params() Params {
	return f.params
}

// Canonical returns the normalized form of raw.
func (f *Fingerprinter) Canonical(raw string) string {
	return f.normalize(raw)
}

// Fingerprint normalizes raw and fingerprints the canonical text.
func (f *Fingerprinter) Fingerprint(raw string) Fingerprint {
	return f.FingerprintCanonical(f.normalize(raw))
}

// FingerprintCanonical fingerprints text that is already canonical.
func (f *Fingerprinter) FingerprintCanonical(text string) Fingerprint {
	return collect(Selections(text, f.params, f.hash))
}
