package respfmt

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// prettyXML re-indents a well formed document token by token, keeping
// namespace prefixes exactly as written
func prettyXML(body string) (string, error) {
	d := xml.NewDecoder(strings.NewReader(body))
	// body is already UTF-8, whatever the declaration says
	d.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }
	var (
		w     indenter
		stack []string
	)
	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := qname(t.Name)
			stack = append(stack, name)
			w.open(startTag(name, t.Attr))
		case xml.EndElement:
			name := qname(t.Name)
			if len(stack) == 0 || stack[len(stack)-1] != name {
				return "", fmt.Errorf("unexpected </%s>", name)
			}
			stack = stack[:len(stack)-1]
			w.close("</"+name+">", true)
		case xml.CharData:
			w.text(textEscaper.Replace(strings.TrimSpace(string(t))))
		case xml.Comment:
			w.leaf("<!--" + string(t) + "-->")
		case xml.ProcInst:
			inst := strings.TrimSpace(string(t.Inst))
			if inst != "" {
				inst = " " + inst
			}
			w.leaf("<?" + t.Target + inst + "?>")
		case xml.Directive:
			w.leaf("<!" + string(t) + ">")
		}
	}
	if len(stack) > 0 {
		return "", errors.New("unclosed <" + stack[len(stack)-1] + ">")
	}
	return w.String(), nil
}

func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func startTag(name string, attrs []xml.Attr) string {
	var b strings.Builder
	b.WriteString("<" + name)
	for _, a := range attrs {
		b.WriteString(" " + qname(a.Name) + `="` + attrEscaper.Replace(a.Value) + `"`)
	}
	b.WriteString(">")
	return b.String()
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

var tagSplit = regexp.MustCompile(`<[^>]+>`)

// splitIndent is the fallback for documents the decoder rejects: split on
// tags and indent by their shape without checking that they match
func splitIndent(body string) string {
	body = strings.TrimSpace(body)
	var w indenter
	prev := 0
	for _, loc := range tagSplit.FindAllStringIndex(body, -1) {
		w.text(strings.TrimSpace(body[prev:loc[0]]))
		tag := body[loc[0]:loc[1]]
		switch {
		case strings.HasPrefix(tag, "</"):
			w.close(tag, false)
		case strings.HasPrefix(tag, "<?"), strings.HasPrefix(tag, "<!"), strings.HasSuffix(tag, "/>"):
			w.leaf(tag)
		default:
			w.open(tag)
		}
		prev = loc[1]
	}
	w.text(strings.TrimSpace(body[prev:]))
	return w.String()
}
