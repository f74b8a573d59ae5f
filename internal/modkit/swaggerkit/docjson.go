package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"deploytrack/internal/platform/config"
	perr "deploytrack/internal/platform/errors"

	docs "deploytrack/internal/services/api/docs"
)

// SpecMutator lets modules tweak the parsed swagger spec before it is served
type SpecMutator func(map[string]any)

var mutators []SpecMutator

// docReader is a seam so tests can inject invalid JSON
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// Register adds a spec mutator for swagger JSON
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// errorExample is one default response injected into every operation
type errorExample struct {
	status  int
	errCode perr.ErrorCode
	message string
}

var defaultErrors = []errorExample{
	{http.StatusBadRequest, perr.ErrorCodeValidation, "url_link is required"},
	{http.StatusUnauthorized, perr.ErrorCodeUnauthorized, "invalid token"},
	{http.StatusInternalServerError, perr.ErrorCodePanic, "panic recovered"},
}

// serveDocJSON serves the spec with the base url, error envelope and default responses filled in
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		normalizeVersion(spec, "/api/v1")

		cfg := config.New().Prefix("CORE_API_")
		if v := cfg.MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + v
				}
			}
		}

		schema(spec, "ErrorResponse", errorSchema)
		for _, e := range defaultErrors {
			eachOperation(spec, func(op map[string]any) { addResponse(op, e) })
		}

		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// normalizeVersion pins the document to OAS 3.0.3, which the UI renders,
// and adds a servers entry when none is declared
func normalizeVersion(spec map[string]any, url string) {
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

var errorSchema = map[string]any{
	"type":        "object",
	"description": "Standard error response",
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer", "format": "int32"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer", "format": "int32"},
		"error":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
	},
	"required": []any{"status_code", "status"},
}

// schema adds components.schemas[name] unless the document already has it
func schema(spec map[string]any, name string, def map[string]any) {
	comps := child(spec, "components")
	schemas := child(comps, "schemas")
	if _, ok := schemas[name]; !ok {
		schemas[name] = def
	}
}

func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}

// eachOperation visits every method object under paths, skipping shared path parameters
func eachOperation(spec map[string]any, fn func(op map[string]any)) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for key, v := range node {
			if key == "parameters" {
				continue
			}
			if op, ok := v.(map[string]any); ok {
				fn(op)
			}
		}
	}
}

func addResponse(op map[string]any, e errorExample) {
	responses := child(op, "responses")
	key := strconv.Itoa(e.status)
	if _, ok := responses[key]; ok {
		return
	}
	responses[key] = map[string]any{
		"description": http.StatusText(e.status),
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": map[string]any{
					"status_code": e.status,
					"status":      http.StatusText(e.status),
					"code":        e.errCode,
					"error":       e.message,
					"request_id":  "deploytrack/abc-000001",
				},
			},
		},
	}
}
