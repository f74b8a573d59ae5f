package middleware_test

import (
	"bytes"
	"compress/flate"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	perr "deploytrack/internal/platform/errors"
	"deploytrack/internal/platform/logger"
	pnet "deploytrack/internal/platform/net"
	"deploytrack/internal/platform/net/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	t.Cleanup(logger.Use(zerolog.New(&buf)))
	return &buf
}

func TestAccessLog(t *testing.T) {
	buf := captureLogs(t)

	r := chi.NewRouter()
	r.Use(middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: time.Hour}))
	r.Get("/components/{uid}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = io.WriteString(w, "short and stout")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/components/vp-1", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "/components/{uid}", line["route"])
	assert.Equal(t, "/components/vp-1", line["path"])
	assert.EqualValues(t, 418, line["status"])
	assert.EqualValues(t, len("short and stout"), line["bytes"])
}

func TestAccessLog_Slow(t *testing.T) {
	buf := captureLogs(t)
	h := middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: time.Nanosecond})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		time.Sleep(time.Millisecond)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slow", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"slow":true`)
}

type authFunc func(*http.Request) (string, error)

func (f authFunc) Parse(r *http.Request) (string, error) { return f(r) }

func TestAuth(t *testing.T) {
	var actor string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = pnet.Actor(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	write := func(w http.ResponseWriter, status int, body any) {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
	port := authFunc(func(r *http.Request) (string, error) {
		if r.Header.Get("Authorization") != "Bearer s3cret" {
			return "", perr.Unauthorizedf("invalid token")
		}
		return "release-bot", nil
	})

	req := httptest.NewRequest(http.MethodGet, "/components", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	rec := httptest.NewRecorder()
	middleware.Auth(port, write)(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "release-bot", actor)

	actor = ""
	req = httptest.NewRequest(http.MethodGet, "/components", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "rid-9"))
	rec = httptest.NewRecorder()
	middleware.Auth(port, write)(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, actor)
	var body pnet.Wire
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid token", body.Error)
	assert.Equal(t, "rid-9", body.RequestID)

	rec = httptest.NewRecorder()
	middleware.Auth(nil, write)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRecoverJSON(t *testing.T) {
	buf := captureLogs(t)
	h := middleware.RequestID()(middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil component")
	})))

	req := httptest.NewRequest(http.MethodPost, "/components", nil)
	req.Header.Set("X-Request-Id", "rid-panic")
	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { h.ServeHTTP(rec, req) })

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "rid-panic", rec.Header().Get("X-Request-ID"))
	var body pnet.Wire
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, perr.ErrorCodePanic, body.Code)
	assert.Equal(t, "panic recovered", body.Error)
	assert.Equal(t, "rid-panic", body.RequestID)
	assert.Contains(t, buf.String(), "nil component")
}

func TestCompress(t *testing.T) {
	h := middleware.Compress(flate.BestSpeed)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":"`+strings.Repeat("vp", 4096)+`"}`)
	}))
	req := httptest.NewRequest(http.MethodGet, "/components", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

func TestCORS(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"https://studio.example.com"}})(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/components", nil)
	req.Header.Set("Origin", "https://studio.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://studio.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
	assert.Equal(t, "", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/components", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestStackPieces(t *testing.T) {
	var seenID string
	h := middleware.RequestID()(middleware.NoCache()(middleware.StripSlashes()(middleware.Timeout(time.Second)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenID = pnet.RequestID(r.Context())
			_, _ = io.WriteString(w, r.URL.Path)
		})))))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/components/", nil))

	assert.NotEmpty(t, seenID)
	assert.Equal(t, "no-cache, no-store, no-transform, must-revalidate, private, max-age=0", rec.Header().Get("Cache-Control"))
	assert.NotNil(t, middleware.RealIP())
}
