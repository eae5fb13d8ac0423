package winnow

import "iter"

// Window is a run of consecutive hashed grams.
type Window []HashedGram

// Windows slides a window of windowSize over seq one element at a time. Input
// shorter than windowSize yields nothing; partial windows are never emitted.
//
// Each yielded Window is a fresh slice, so callers may retain it.
func Windows(seq iter.Seq[HashedGram], windowSize int) iter.Seq[Window] {
	return func(yield func(Window) bool) {
		if windowSize <= 0 {
			return
		}
		// ring holds the last windowSize elements; head is the oldest. It grows
		// with the input so an oversized window costs nothing on short text.
		var ring []HashedGram
		head := 0
		for hg := range seq {
			if len(ring) < windowSize {
				ring = append(ring, hg)
			} else {
				ring[head] = hg
				head = (head + 1) % windowSize
			}
			if len(ring) < windowSize {
				continue
			}
			w := make(Window, windowSize)
			n := copy(w, ring[head:])
			copy(w[n:], ring[:head])
			if !yield(w) {
				return
			}
		}
	}
}
