package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops what must not reach the database or the parser:
// NUL, ASCII controls other than \n \r \t, DEL, C1 controls and invalid UTF-8 bytes.
// Clean input is returned as is without allocating.
func Sanitize(s string) string {
	if clean(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if drop(r) {
			return -1
		}
		return r
	}, strings.ToValidUTF8(s, ""))
}

func clean(s string) bool {
	for i := 0; i < len(s); {
		if b := s[i]; b < utf8.RuneSelf {
			if drop(rune(b)) {
				return false
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if (r == utf8.RuneError && size == 1) || drop(r) {
			return false
		}
		i += size
	}
	return true
}

func drop(r rune) bool {
	switch {
	case r == '\n' || r == '\r' || r == '\t':
		return false
	case r < 0x20 || r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	}
	return false
}
