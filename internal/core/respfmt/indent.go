package respfmt

import "strings"

const indentUnit = "  "

// indenter lays out a token stream one tag per line. An element whose only
// content is text stays on its opening line: <a>text</a>.
type indenter struct {
	lines []string
	depth int
	// fresh is set while the last line is an open tag with no child elements yet
	fresh   bool
	hasText bool
}

func (w *indenter) push(s string) {
	w.lines = append(w.lines, strings.Repeat(indentUnit, w.depth)+s)
}

func (w *indenter) open(tag string) {
	w.push(tag)
	w.depth++
	w.fresh, w.hasText = true, false
}

func (w *indenter) leaf(s string) {
	w.push(s)
	w.fresh = false
}

func (w *indenter) text(s string) {
	if s == "" {
		return
	}
	if w.fresh && !w.hasText {
		w.lines[len(w.lines)-1] += s
		w.hasText = true
		return
	}
	w.push(s)
	w.fresh = false
}

// close ends the current element; collapse turns an empty <x> into <x/>
func (w *indenter) close(tag string, collapse bool) {
	if w.depth > 0 {
		w.depth--
	}
	if w.fresh {
		last := &w.lines[len(w.lines)-1]
		if collapse && !w.hasText && strings.HasSuffix(*last, ">") {
			*last = strings.TrimSuffix(*last, ">") + "/>"
		} else {
			*last += tag
		}
		w.fresh = false
		return
	}
	w.push(tag)
}

func (w *indenter) String() string { return strings.Join(w.lines, "\n") }
