// Package httpkit is the routing and response surface modules build on.
// Modules import it instead of platform/net/http
package httpkit

import (
	"net/http"
	"strings"

	phttp "deploytrack/internal/platform/net/http"
)

type (
	Router   = phttp.Router
	Handler  = phttp.Handler
	Envelope = phttp.Envelope
	Response = phttp.Response
)

// Handlers return (any, error). Returning one of these instead of a bare
// value picks the status
func Created(data any) Response { return phttp.Created(data) }
func NoContent() Response       { return phttp.NoContent() }

// List is a 200 carrying items and their page block
func List(items any, total, page, size int) Response { return phttp.List(items, total, page, size) }

// JSON decodes and validates a T from the body before fn runs
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler { return phttp.JSONHandler(fn) }

// Call wraps a handler that reads no body
func Call(fn func(*http.Request) (any, error)) Handler { return phttp.JSONHandlerNoBody(fn) }

func Param(r *http.Request, name string) string                        { return phttp.Param(r, name) }
func QueryInt(r *http.Request, key string, def int) int                { return phttp.QueryInt(r, key, def) }
func Get(r Router, path string, h func(*http.Request) (any, error))    { r.Get(path, Call(h)) }
func Post(r Router, path string, h func(*http.Request) (any, error))   { r.Post(path, Call(h)) }
func Delete(r Router, path string, h func(*http.Request) (any, error)) { r.Delete(path, Call(h)) }

func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(h))
}

func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Put(path, JSON(h))
}

func PatchJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Patch(path, JSON(h))
}

// MountUnder routes prefix to a subrouter carrying mw
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// MountAPI is MountUnder at /api/{version}
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, "/api/"+strings.Trim(version, "/"), mw, mount)
}

// MountAPIV1 mounts under /api/v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
