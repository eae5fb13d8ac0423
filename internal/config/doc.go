// Package config loads, normalizes, and validates textprint configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// TEXTPRINT_LOG_LEVEL. The Config type centralizes the fingerprinting
// parameters, normalizer switches, batch sizing, and logging knobs the CLI
// needs.
//
// Always obtain settings through this package so downstream code receives
// validated fingerprint parameters and clear validation errors that name the
// offending key.
package config
