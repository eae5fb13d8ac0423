// Package logging assembles structured slog loggers and formatting helpers used
// across textprint.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so batch code can tag log lines
// with the run ID and the document being fingerprinted. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Logs are written to stderr (and optionally a file) so that fingerprint
// output on stdout stays machine readable.
package logging
