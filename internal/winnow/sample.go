package winnow

import (
	"iter"
	"math"
)

// Sample keeps roughly ratio of the grams in seq by taking every
// round(1/ratio)-th gram by ordinal position. Survivors keep their offsets.
// A ratio of zero or less yields an empty sequence.
func Sample(seq iter.Seq[Gram], ratio float64) iter.Seq[Gram] {
	return SampleModulo(seq, sampleModulo(ratio))
}

// SampleModulo keeps the grams whose ordinal position is a multiple of
// modulo. A modulo of zero or less yields an empty sequence.
func SampleModulo(seq iter.Seq[Gram], modulo int) iter.Seq[Gram] {
	return func(yield func(Gram) bool) {
		if modulo <= 0 {
			return
		}
		i := 0
		for gram := range seq {
			keep := i%modulo == 0
			i++
			if keep && !yield(gram) {
				return
			}
		}
	}
}

func sampleModulo(ratio float64) int {
	if ratio <= 0 || math.IsNaN(ratio) {
		return 0
	}
	if ratio >= 1 {
		return 1
	}
	return int(math.Round(1 / ratio))
}
