package respfmt

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

// prettyHTML indents tags as written, without building a DOM, so the
// output keeps the source markup and attribute order
func prettyHTML(body string) (string, error) {
	z := html.NewTokenizer(strings.NewReader(body))
	var w indenter
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return w.String(), nil
			}
			return "", z.Err()
		}
		raw := string(z.Raw())
		switch tt {
		case html.TextToken:
			w.text(strings.TrimSpace(raw))
		case html.StartTagToken:
			name, _ := z.TagName()
			if voidElements[string(name)] {
				w.leaf(raw)
			} else {
				w.open(raw)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if voidElements[string(name)] {
				w.leaf(raw)
			} else {
				w.close(raw, false)
			}
		case html.SelfClosingTagToken, html.CommentToken, html.DoctypeToken:
			w.leaf(raw)
		}
	}
}
