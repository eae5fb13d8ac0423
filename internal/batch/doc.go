// Package batch fingerprints many documents concurrently.
//
// A Runner owns a bounded worker pool and an in-memory cache of fingerprints
// keyed by the XXH64 of each document's raw text, so identical bodies are
// normalized and winnowed once per process. Each Run is tagged with a fresh
// run ID that flows through the logger and into the Report.
package batch
