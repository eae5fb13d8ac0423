// Package winnow computes winnowing fingerprints of canonical text.
//
// The pipeline splits canonical text into fixed-length grams, optionally culls
// them by ordinal position, hashes each gram, slides a window of fixed size
// over the hashes, and keeps the rightmost minimum of every window. Repeated
// selections across adjacent windows are emitted once.
//
// Every stage is a lazy iter.Seq over immutable values. Ranging over a stage
// again recomputes it from its source; callers that need several passes over
// an intermediate sequence should collect it with slices.Collect.
//
// Text handed to this package must already be canonical (lowercase letters and
// digits only). Use Fingerprinter to bind a normalizer in front of the
// pipeline.
package winnow
