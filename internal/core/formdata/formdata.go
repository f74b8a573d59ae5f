// Package formdata finds Data Manager form ids inside arbitrary JSON exports
// and resolves them to table links through an id -> table group mapping
package formdata

import (
	"bytes"
	"encoding/json"
	"io"
	"slices"
	"strings"

	perr "deploytrack/internal/platform/errors"
)

// Key is the object key holding a Data Manager form id
const Key = "form_data_id"

// Decode parses raw JSON into a generic tree; numbers stay json.Number.
// Malformed input returns an ErrorCodeJSON error carrying the decoder diagnostic.
func Decode(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "invalid JSON document: %v", err)
	}
	// a second value means trailing garbage
	if _, err := dec.Token(); err != io.EOF {
		return nil, perr.Newf(perr.ErrorCodeJSON, "invalid JSON document: trailing data after top level value")
	}
	return v, nil
}

// Extract collects form ids from v, see ExtractKey
func Extract(v any) []string { return ExtractKey(v, Key) }

// ExtractKey walks every object and array under v and returns the unique,
// sorted, non blank string values stored under key at any depth.
// The walk uses an explicit stack so deep documents cannot exhaust the goroutine stack.
func ExtractKey(v any, key string) []string {
	seen := map[string]struct{}{}
	stack := []any{v}
	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]

		switch t := cur.(type) {
		case map[string]any:
			if s, ok := t[key].(string); ok && strings.TrimSpace(s) != "" {
				seen[s] = struct{}{}
			}
			for _, child := range t {
				stack = append(stack, child)
			}
		case []any:
			stack = append(stack, t...)
		}
	}

	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
