package http_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"deploytrack/internal/platform/config"
	phttp "deploytrack/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runServer(t *testing.T, srv *phttp.Server) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	return cancel, done
}

func waitRun(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatalf("Run did not return")
	}
}

func TestNewServer_Addr(t *testing.T) {
	assert.Equal(t, ":4000", phttp.NewServer(config.New()).Addr())

	t.Setenv("CORE_API_PORT", "8088")
	assert.Equal(t, ":8088", phttp.NewServer(config.New().Prefix("CORE_API_")).Addr())
}

func TestNewServer_OptionsSeeTheMux(t *testing.T) {
	var seen *chi.Mux
	srv := phttp.NewServer(config.New(), func(m *chi.Mux) { seen = m })
	require.NotNil(t, seen)
	assert.Same(t, seen, srv.Router().Mux())

	srv.Router().Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "ok") })
	rec := httptest.NewRecorder()
	seen.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_ShutdownEndsRun(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:0")
	srv := phttp.NewServer(config.New())
	_, done := runServer(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	waitRun(t, done)
}

func TestServer_CancelDrains(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:0")
	t.Setenv("SHUTDOWN_GRACE", "1s")
	cancel, done := runServer(t, phttp.NewServer(config.New()))
	cancel()
	waitRun(t, done)
}

func TestServer_AddressInUse(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	t.Setenv("PORT", busy.Addr().String())
	assert.Error(t, phttp.NewServer(config.New()).Run(context.Background()))
}
