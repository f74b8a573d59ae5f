// Package normalize cleans user supplied text before it is parsed or stored
// Pipeline order
// 1 Drop invalid UTF-8 and control characters (Sanitize)
// 2 Unicode NFC composition
// 3 Strip format characters such as zero width spaces and BOMs
// 4 Trim, and for Line collapse whitespace runs to one space
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)),
		)
	},
}

func compose(s string) string {
	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return s
	}
	return out
}

// Text sanitizes and NFC composes s, keeping its inner whitespace and line breaks
func Text(s string) string {
	if s == "" {
		return s
	}
	return strings.TrimSpace(compose(Sanitize(s)))
}

// Line is Text folded onto one line with single spaces, used for names and ids
func Line(s string) string {
	if s == "" {
		return s
	}
	return strings.Join(strings.Fields(compose(Sanitize(s))), " ")
}
