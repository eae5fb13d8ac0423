// Package main hosts the textprint CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration once, builds a
// fingerprinter from it (with per-invocation flag overrides), and renders
// batch reports as tables, JSON, or YAML. Fingerprinting itself lives in the
// internal packages; commands here only translate flags and format output.
package main
