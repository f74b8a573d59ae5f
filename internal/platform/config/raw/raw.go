// Package raw reads environment variables without logging anything, so the
// logger can configure itself from it
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Lookup is os.LookupEnv's shape. Tests swap in a map
type Lookup func(key string) (string, bool)

// Conf is a prefixed view over a Lookup
type Conf struct {
	prefix string
	lookup Lookup
}

// New is a root view over the process environment
func New() Conf { return Conf{lookup: os.LookupEnv} }

// FromMap is a root view over m
func FromMap(m map[string]string) Conf {
	return Conf{lookup: func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}}
}

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p, lookup: c.lookup} }

// Key is the full variable name for k
func (c Conf) Key(k string) string { return c.prefix + k }

// Value is the trimmed value of k, "" when unset
func (c Conf) Value(k string) string {
	look := c.lookup
	if look == nil {
		look = os.LookupEnv
	}
	v, _ := look(c.Key(k))
	return strings.TrimSpace(v)
}

// Get is Value with a fallback for blank
func (c Conf) Get(k, def string) string {
	if v := c.Value(k); v != "" {
		return v
	}
	return def
}

// GetBool accepts 1, true and yes in any case. Other non blank values are false
func (c Conf) GetBool(k string, def bool) bool {
	switch v := strings.ToLower(c.Value(k)); v {
	case "":
		return def
	case "1", "true", "yes":
		return true
	}
	return false
}

// GetInt falls back to def for blank, negative or non numeric values
func (c Conf) GetInt(k string, def int) int {
	n, err := strconv.Atoi(c.Value(k))
	if err != nil || n < 0 {
		return def
	}
	return n
}
