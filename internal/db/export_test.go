package db

import "testing"

// SetRandomOffset replaces the random row picker for the duration of a test.
func SetRandomOffset(t testing.TB, pick func(n int64) int64) {
	t.Helper()
	prev := randomOffset
	randomOffset = pick
	t.Cleanup(func() {
		randomOffset = prev
	})
}

var IsUniqueViolation = isUniqueViolation
