// Package respfmt classifies and pretty prints HTTP response bodies for display
package respfmt

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Kind is the detected body format
type Kind string

const (
	KindJSON Kind = "json"
	KindXML  Kind = "xml"
	KindHTML Kind = "html"
	KindText Kind = "text"
)

var htmlIndicators = []string{
	"<!doctype html", "<html", "<head", "<body", "<div", "<span", "<p>",
	"<h1", "<h2", "<h3", "<script", "<style", "<meta", "<link", "<title",
}

// IsHTML reports whether the content type or the body look like HTML
func IsHTML(body, contentType string) bool {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml") {
		return true
	}
	lower := strings.ToLower(strings.TrimSpace(body))
	for _, ind := range htmlIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

// Detect picks the body format; JSON wins over XML which wins over HTML
func Detect(body, contentType string) Kind {
	ct := strings.ToLower(contentType)
	b := strings.TrimSpace(body)
	html := IsHTML(body, contentType)

	switch {
	case strings.Contains(ct, "application/json") || strings.HasPrefix(b, "{") || strings.HasPrefix(b, "["):
		return KindJSON
	case strings.Contains(ct, "xml") || strings.HasPrefix(b, "<?xml"):
		return KindXML
	case strings.HasPrefix(b, "<") && !hasPrefixFold(b, "<!doctype") && !html:
		return KindXML
	case html:
		return KindHTML
	}
	return KindText
}

// Pretty formats body for its detected kind. When formatting fails the body
// comes back unchanged so callers can always show something.
func Pretty(body, contentType string) (string, Kind) {
	kind := Detect(body, contentType)
	var (
		out string
		err error
	)
	switch kind {
	case KindJSON:
		out, err = prettyJSON(body)
	case KindXML:
		out, err = prettyXML(body)
		if err != nil {
			out, err = splitIndent(body), nil
		}
	case KindHTML:
		out, err = prettyHTML(body)
	default:
		return body, kind
	}
	if err != nil {
		return body, kind
	}
	return out, kind
}

// Title returns the trimmed <title> text of an HTML document, or ""
func Title(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func prettyJSON(body string) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(body)), "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
