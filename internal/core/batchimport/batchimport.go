// Package batchimport turns pasted text, one component per line with its
// platform URL, into component drafts ready for review and commit.
//
// A line is "<optional name> <url>". The category is read from the URL path:
//
//	.../visual-programming/<id>            Visual Programming
//	.../experience-manager/update/<id>     Experience Manager
//	.../form-data/table/<group>/<id>       Data Manager
//
// Only http and https URLs count. Lines without one, or with a URL of any
// other shape, produce nothing.
package batchimport

import (
	"iter"
	"regexp"
	"strings"

	"deploytrack/internal/core/catalog"

	"golang.org/x/text/unicode/norm"
)

// UntitledName replaces a missing name
const UntitledName = "Untitled Component"

// Component is a draft parsed from one line; callers may edit it before saving
type Component struct {
	Line        int                `json:"line"`
	Name        string             `json:"name"`
	ComponentID string             `json:"component_id"`
	URLLink     string             `json:"url_link"`
	Category    catalog.Category   `json:"category"`
	Type        string             `json:"type"`
	ChangeType  catalog.ChangeType `json:"change_type"`
	// Description carries the group id for Data Manager links and is empty otherwise
	Description string `json:"description"`
}

var (
	urlRe = regexp.MustCompile(`https?://\S+`)
	vpRe  = regexp.MustCompile(`/visual-programming/([^/\s?#]*)`)
	emRe  = regexp.MustCompile(`/experience-manager/update/([^/\s?#]*)`)
	dmRe  = regexp.MustCompile(`/form-data/table/([^/\s?#]*)/([^/\s?#]*)`)
)

// Parse yields one Component per recognized line, in input order.
// The sequence reads text lazily and may be ranged over once per call.
func Parse(text string) iter.Seq[Component] {
	return func(yield func(Component) bool) {
		n := 0
		for line := range strings.Lines(text) {
			n++
			c, ok := ParseLine(line)
			if !ok {
				continue
			}
			c.Line = n
			if !yield(c) {
				return
			}
		}
	}
}

// ParseAll collects Parse into a slice
func ParseAll(text string) []Component {
	var out []Component
	for c := range Parse(text) {
		out = append(out, c)
	}
	return out
}

// ParseLine parses a single line; ok is false when the line yields nothing
func ParseLine(line string) (c Component, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return c, false
	}
	loc := urlRe.FindStringIndex(line)
	if loc == nil {
		return c, false
	}
	url := line[loc[0]:loc[1]]

	cat, id, group, ok := classify(url)
	if !ok {
		return c, false
	}

	// inner spacing is kept as typed
	name := strings.TrimSpace(norm.NFC.String(line[:loc[0]]))
	if name == "" {
		name = UntitledName
	}
	c = Component{
		Name:        name,
		ComponentID: id,
		URLLink:     url,
		Category:    cat,
		Type:        cat.DefaultType(),
		ChangeType:  catalog.ChangeNew,
	}
	if cat == catalog.DataManager {
		c.Description = "Group ID: " + group
	}
	return c, true
}

// classify matches the URL against the known path shapes, first match wins
func classify(url string) (cat catalog.Category, id, group string, ok bool) {
	if m := vpRe.FindStringSubmatch(url); m != nil {
		return catalog.VisualProgramming, m[1], "", true
	}
	if m := emRe.FindStringSubmatch(url); m != nil {
		return catalog.ExperienceManager, m[1], "", true
	}
	if m := dmRe.FindStringSubmatch(url); m != nil {
		return catalog.DataManager, m[2], m[1], true
	}
	return "", "", "", false
}
