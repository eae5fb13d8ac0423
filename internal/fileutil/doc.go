// Package fileutil writes report files atomically, optionally under an
// advisory lock shared by concurrent textprint invocations.
package fileutil
