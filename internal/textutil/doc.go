// Package textutil provides small text helpers shared by the normalizer and
// the CLI.
//
// The primary use cases are:
//   - Splitting text into word tokens ahead of stopword removal and stemming
//   - Sanitizing filenames for per-document output files
package textutil
