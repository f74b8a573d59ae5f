// Package testkit holds the few helpers testify does not cover: swapping
// package level seams and asserting panics
package testkit

import (
	"strings"
	"sync"
	"testing"
)

var serial sync.Mutex

// Swap sets *target to v for the rest of the test
func Swap[T any](t testing.TB, target *T, v T) {
	t.Helper()
	prev := *target
	*target = v
	t.Cleanup(func() { *target = prev })
}

// Serial holds a process wide lock until the test ends. Tests that Swap
// shared seams or set env call it so they never overlap
func Serial(t testing.TB) {
	t.Helper()
	serial.Lock()
	t.Cleanup(serial.Unlock)
}

// MustPanic fails unless fn panics, and returns what it panicked with
func MustPanic(t testing.TB, fn func()) (v any) {
	t.Helper()
	func() {
		defer func() { v = recover() }()
		fn()
	}()
	if v == nil {
		t.Fatalf("expected a panic")
	}
	return v
}

// MustContain fails unless out contains want, printing out in full
func MustContain(t testing.TB, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Fatalf("missing %q in:\n%s", want, out)
	}
}
