// Package testsupport provides fixtures shared by package tests: temp-rooted
// configs, document trees, and a small overlapping corpus.
package testsupport
