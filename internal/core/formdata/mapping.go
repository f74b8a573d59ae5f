package formdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mapping maps a form id to the table group it belongs to
type Mapping map[string]string

// LoadMapping reads a JSON object (or YAML for .yaml/.yml files) of id -> group.
// On any failure it returns an empty, usable mapping together with the error
// so callers can log it and carry on with every id unresolved.
func LoadMapping(path string) (Mapping, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Mapping{}, fmt.Errorf("read mapping %s: %w", path, err)
	}
	m, err := ParseMapping(b, filepath.Ext(path))
	if err != nil {
		return Mapping{}, fmt.Errorf("parse mapping %s: %w", path, err)
	}
	return m, nil
}

// ParseMapping decodes mapping bytes; ext picks YAML for .yaml and .yml, JSON otherwise
func ParseMapping(b []byte, ext string) (Mapping, error) {
	m := Mapping{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &m); err != nil {
			return Mapping{}, err
		}
	default:
		if err := json.Unmarshal(b, &m); err != nil {
			return Mapping{}, err
		}
	}
	if m == nil {
		m = Mapping{}
	}
	return m, nil
}
