package modkit

import (
	"net/http"

	"deploytrack/internal/modkit/httpkit"
)

// Built is the resolved configuration of one module
type Built struct {
	Name      string
	Prefix    string
	Mw        []func(http.Handler) http.Handler
	Ports     any
	SwaggerOn bool

	// Subrouter runs once at mount time, Register adds routes after the
	// module's own
	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Option edits a Built before the module reads it
type Option func(*Built)

// Build applies opts in order. Later options win, middlewares accumulate
func Build(opts ...Option) Built {
	b := Built{
		Subrouter: func(r httpkit.Router) httpkit.Router { return r },
		Register:  func(httpkit.Router) {},
	}
	for _, o := range opts {
		if o != nil {
			o(&b)
		}
	}
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}

func WithName(name string) Option     { return func(b *Built) { b.Name = name } }
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }
func WithSwagger(on bool) Option      { return func(b *Built) { b.SwaggerOn = on } }

// WithMiddlewares appends per module middleware
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands a module the port set it declared. The module type asserts
// it back to its own Ports struct
func WithPorts[T any](p T) Option {
	return func(b *Built) { b.Ports = p }
}

func WithSubrouter(fn func(httpkit.Router) httpkit.Router) Option {
	return func(b *Built) {
		if fn != nil {
			b.Subrouter = fn
		}
	}
}

func WithRegister(fn func(httpkit.Router)) Option {
	return func(b *Built) {
		if fn != nil {
			b.Register = fn
		}
	}
}
