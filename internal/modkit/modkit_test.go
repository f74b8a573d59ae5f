package modkit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"deploytrack/internal/modkit/httpkit"
	"deploytrack/internal/platform/config"
	phttp "deploytrack/internal/platform/net/http"
	"deploytrack/internal/platform/store"
	kit "deploytrack/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// widget is the smallest module built on Base
type widget struct {
	Base
}

func newWidget(opts ...Option) *widget {
	b := Build(append([]Option{WithName("widgets"), WithPrefix("widgets")}, opts...)...)
	return &widget{Base: NewBase(b, func(r httpkit.Router) {
		httpkit.Get(r, "/ping", func(*http.Request) (any, error) { return "pong", nil })
	})}
}

var _ Module = (*widget)(nil)

func serve(t *testing.T, m Module, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestBase_MountsUnderNormalizedPrefix(t *testing.T) {
	t.Parallel()

	m := newWidget()
	if m.Name() != "widgets" || m.Prefix() != "/widgets" {
		t.Fatalf("name=%q prefix=%q", m.Name(), m.Prefix())
	}
	rr := serve(t, m, http.MethodGet, "/widgets/ping")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"pong"`) {
		t.Fatalf("GET /widgets/ping = %d %s", rr.Code, rr.Body.String())
	}
}

func TestBase_OptionsApplyInOrder(t *testing.T) {
	t.Parallel()

	var seen []string
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = append(seen, "mw")
			next.ServeHTTP(w, r)
		})
	}
	m := newWidget(
		WithMiddlewares(mw),
		WithPorts("port-set"),
		WithSwagger(true),
		WithSubrouter(func(r phttp.Router) phttp.Router {
			seen = append(seen, "sub")
			return r
		}),
		WithRegister(func(r phttp.Router) {
			httpkit.Get(r, "/extra", func(*http.Request) (any, error) { return 1, nil })
		}),
	)

	if m.Ports() != "port-set" || !m.SwaggerOn() || len(m.Middlewares()) != 1 {
		t.Fatalf("options not applied: ports=%v swagger=%v mw=%d", m.Ports(), m.SwaggerOn(), len(m.Middlewares()))
	}
	if rr := serve(t, m, http.MethodGet, "/widgets/extra"); rr.Code != http.StatusOK {
		t.Fatalf("extra route = %d", rr.Code)
	}
	if len(seen) != 2 || seen[0] != "sub" || seen[1] != "mw" {
		t.Fatalf("order = %v", seen)
	}
}

func TestBase_EmptyNamePanics(t *testing.T) {
	t.Parallel()

	m := &widget{Base: NewBase(Build(WithPrefix("/x")), nil)}
	kit.MustPanic(t, func() { _ = m.Name() })

	m = &widget{Base: NewBase(Build(WithName("x")), nil)}
	kit.MustPanic(t, func() { _ = m.Prefix() })
}

func TestDeps_FromStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, err := store.Open(ctx, store.Config{Driver: store.DialectSQLite, SQLite: store.SQLiteConfig{Path: ":memory:"}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })

	d := FromStore(s, config.New(), zerolog.Nop())
	if d.SQL == nil || d.Dialect != store.DialectSQLite || d.CH != nil {
		t.Fatalf("deps = %+v", d)
	}
	if d.RequireSQL("widgets") == nil {
		t.Fatalf("RequireSQL returned nil")
	}

	empty := FromStore(nil, config.New(), zerolog.Nop())
	kit.MustPanic(t, func() { _ = empty.RequireSQL("widgets") })
}
