// Package catalog is the closed set of component categories, the types each
// category allows, and the change types a deployment can carry
package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// Category groups components by the low-code tool that owns them
type Category string

const (
	// VisualProgramming covers APIs, jobs, functions and workflows
	VisualProgramming Category = "Visual Programming"
	// ExperienceManager covers screens, dashboards and forms
	ExperienceManager Category = "Experience Manager"
	// DataManager covers schemas, tables and pipelines
	DataManager Category = "Data Manager"
)

// ChangeType tells whether a deployment adds a component or changes one
type ChangeType string

const (
	// ChangeNew is a component deployed for the first time
	ChangeNew ChangeType = "New"
	// ChangeUpdated is a change to a component already deployed
	ChangeUpdated ChangeType = "Updated"
)

type entry struct {
	short string
	types []string
}

// table is the single source of truth; the first type of each list is the default
var table = map[Category]entry{
	VisualProgramming: {short: "VP", types: []string{"API", "DJOB", "Function", "Workflow", "Integration"}},
	ExperienceManager: {short: "EM", types: []string{"Single UI", "Multiple UI", "Dashboard", "Form", "Report"}},
	DataManager:       {short: "DM", types: []string{"Schema", "Table", "View", "Stored Procedure", "ETL Pipeline"}},
}

// All lists the categories in display order
func All() []Category {
	return []Category{VisualProgramming, ExperienceManager, DataManager}
}

// ParseCategory accepts a full name or short code in any case
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for c, e := range table {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, e.short) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	_, ok := table[c]
	return ok
}

// Short returns the two letter code (VP, EM, DM)
func (c Category) Short() string { return table[c].short }

// Types returns a copy of the allowed types for c, nil for an unknown category
func (c Category) Types() []string {
	e, ok := table[c]
	if !ok {
		return nil
	}
	return slices.Clone(e.types)
}

// DefaultType is the first allowed type of c
func (c Category) DefaultType() string {
	if e, ok := table[c]; ok {
		return e.types[0]
	}
	return ""
}

// ValidType reports whether typ is allowed for cat
func ValidType(cat Category, typ string) bool {
	e, ok := table[cat]
	return ok && slices.Contains(e.types, typ)
}

// ParseChangeType accepts New or Updated in any case
func ParseChangeType(s string) (ChangeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "new":
		return ChangeNew, nil
	case "updated":
		return ChangeUpdated, nil
	}
	return "", fmt.Errorf("unknown change type %q", s)
}

// Valid reports whether ct is New or Updated
func (ct ChangeType) Valid() bool { return ct == ChangeNew || ct == ChangeUpdated }

// Entry is the wire shape of one category in the catalog listing
type Entry struct {
	Category Category `json:"category"`
	Short    string   `json:"short"`
	Types    []string `json:"types"`
}

// Listing returns every category with its allowed types in display order
func Listing() []Entry {
	out := make([]Entry, 0, len(table))
	for _, c := range All() {
		out = append(out, Entry{Category: c, Short: c.Short(), Types: c.Types()})
	}
	return out
}

