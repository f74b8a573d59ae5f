package batchimport

import "strings"

// IssueCode names why a line needs attention
type IssueCode string

const (
	// IssueNoURL is a non blank line without any URL
	IssueNoURL IssueCode = "no_url"
	// IssueUnrecognizedURL is a URL that matches none of the known path shapes
	IssueUnrecognizedURL IssueCode = "unrecognized_url"
	// IssueEmptyID is a recognized URL whose component id is empty
	IssueEmptyID IssueCode = "empty_id"
)

// Issue points at one input line (1-based)
type Issue struct {
	Line int       `json:"line"`
	Code IssueCode `json:"code"`
	Text string    `json:"text"`
}

// Validate reports the lines Parse would drop or accept with an empty id.
// It is a strict mode report only; Parse output does not change.
func Validate(text string) []Issue {
	var out []Issue
	n := 0
	for raw := range strings.Lines(text) {
		n++
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		url := urlRe.FindString(line)
		if url == "" {
			out = append(out, Issue{Line: n, Code: IssueNoURL, Text: line})
			continue
		}
		_, id, _, ok := classify(url)
		switch {
		case !ok:
			out = append(out, Issue{Line: n, Code: IssueUnrecognizedURL, Text: line})
		case id == "":
			out = append(out, Issue{Line: n, Code: IssueEmptyID, Text: line})
		}
	}
	return out
}
