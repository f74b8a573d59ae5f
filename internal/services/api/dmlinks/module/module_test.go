package module

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"deploytrack/internal/modkit"
	"deploytrack/internal/platform/config"
	phttp "deploytrack/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mount(t *testing.T) http.Handler {
	t.Helper()
	m := New(modkit.Deps{Cfg: config.New(), Log: zerolog.Nop()})
	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)
	return r.Mux()
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, string) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rr.Code, rr.Body.String()
}

func data(t *testing.T, body string) string {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	return string(env.Data)
}

func TestFind_ResolvesThroughMappingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.yaml")
	require.NoError(t, os.WriteFile(path, []byte("X: G1\nZ: G9\n"), 0o600))
	t.Setenv("DMLINKS_MAPPING", path)
	t.Setenv("DMLINKS_HOST", "dm.internal")

	h := mount(t)

	code, body := do(t, h, http.MethodPost, "/dm-links",
		`{"a":{"form_data_id":"X"},"b":[{"form_data_id":"X"},{"form_data_id":"Y"}]}`)
	require.Equal(t, http.StatusOK, code, body)
	assert.JSONEq(t, `{
		"total": 2,
		"resolved": [{"id":"X","group":"G1","url":"https://dm.internal/#/form-data/table/G1/X"}],
		"unresolved": ["Y"]
	}`, data(t, body))

	code, body = do(t, h, http.MethodGet, "/dm-links/mapping", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"entries":2,"source":"`+path+`","host":"dm.internal"}`, data(t, body))
}

func TestFind_MissingMappingAndBadJSON(t *testing.T) {
	t.Setenv("DMLINKS_MAPPING", filepath.Join(t.TempDir(), "absent.json"))

	h := mount(t)

	code, body := do(t, h, http.MethodPost, "/dm-links", `[{"form_data_id":"A"}]`)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"total":1,"resolved":[],"unresolved":["A"]}`, data(t, body))

	code, body = do(t, h, http.MethodGet, "/dm-links/mapping", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"entries":0`)
	assert.Contains(t, body, `"error"`)

	code, body = do(t, h, http.MethodPost, "/dm-links", `{"form_data_id":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body, "invalid JSON document")
}
