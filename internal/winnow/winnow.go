package winnow

import "iter"

// Selection is the hashed gram chosen to represent a window.
type Selection struct {
	Offset int    `json:"offset" yaml:"offset"`
	Hash   uint64 `json:"hash" yaml:"hash"`
}

// Select returns the minimum-hash element of w. Ties go to the rightmost
// occurrence so the anchor advances as windows slide. ok is false for an
// empty window.
func Select(w Window) (Selection, bool) {
	if len(w) == 0 {
		return Selection{}, false
	}
	best := w[0]
	for _, hg := range w[1:] {
		if hg.Hash <= best.Hash {
			best = hg
		}
	}
	return Selection{Offset: best.Offset, Hash: best.Hash}, true
}

// winnower carries the selection of the previous window between steps.
type winnower struct {
	prev    Selection
	hasPrev bool
}

// step records the selection for w and reports whether it should be emitted.
// The carried selection is updated even when the result is suppressed.
func (s *winnower) step(w Window) (Selection, bool) {
	sel, ok := Select(w)
	if !ok {
		return Selection{}, false
	}
	emit := !s.hasPrev || sel != s.prev
	s.prev, s.hasPrev = sel, true
	return sel, emit
}

// Winnow selects the rightmost minimum of every window and yields each
// selection that differs from the one chosen for the immediately preceding
// window. Windows must arrive in offset order.
func Winnow(windows iter.Seq[Window]) iter.Seq[Selection] {
	return func(yield func(Selection) bool) {
		var state winnower
		for w := range windows {
			sel, emit := state.step(w)
			if emit && !yield(sel) {
				return
			}
		}
	}
}
