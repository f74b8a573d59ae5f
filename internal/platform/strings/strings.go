// Package strings holds the few string helpers the std package lacks.
// Import it as str or pstrings
package strings

import (
	std "strings"
	"unicode/utf8"
)

const ellipsis = "..."

// IfEmpty is def when in has no elements
func IfEmpty[T any](in, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString panics naming what is missing when s is blank
func MustString(s, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalises a mount path to one leading slash and no trailing
// one ("dm-links/" gives "/dm-links"). A blank or root path panics
func MustPrefix(s string) string {
	p := std.Trim(std.TrimSpace(s), "/ ")
	if p == "" {
		panic("root path is required")
	}
	return "/" + p
}

// Truncate keeps the first n runes of s, marking a cut with "..."
func Truncate(s string, n int) string {
	switch {
	case n <= 0:
		return ""
	case utf8.RuneCountInString(s) <= n:
		return s
	}
	i := 0
	for range n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i] + ellipsis
}
