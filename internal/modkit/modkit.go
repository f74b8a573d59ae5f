package modkit

import (
	"net/http"

	"deploytrack/internal/modkit/httpkit"
	phttp "deploytrack/internal/platform/net/http"
	str "deploytrack/internal/platform/strings"
)

// Module is the common surface for API modules that can mount routes and expose ports
// keep this tiny so modules stay decoupled
type Module interface {
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r phttp.Router)
	// Ports returns a module specific port set interface for cross wiring
	Ports() any

	// Name returns the module name
	Name() string
}

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module

// Base implements Module from a Built config plus the module's own register func.
// Modules embed it and only supply their routes and ports
type Base struct {
	built    Built
	register func(httpkit.Router)
}

// NewBase pairs a Built config with the routes a module owns.
// Routes added through WithRegister run after the module's own
func NewBase(b Built, register func(httpkit.Router)) Base {
	return Base{built: b, register: register}
}

// MountRoutes mounts the module under its prefix with its middlewares
func (m *Base) MountRoutes(r phttp.Router) {
	httpkit.MountUnder(r, m.Prefix(), m.built.Mw, func(rr httpkit.Router) {
		if m.built.Subrouter != nil {
			rr = m.built.Subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
		if m.built.Register != nil {
			m.built.Register(rr)
		}
	})
}

// Name returns the module name
func (m *Base) Name() string { return str.MustString(m.built.Name, "module name") }

// Prefix returns the module route prefix
func (m *Base) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Middlewares returns the module middlewares
func (m *Base) Middlewares() []func(http.Handler) http.Handler { return m.built.Mw }

// Ports returns the port set passed through WithPorts, modules usually override this
func (m *Base) Ports() any { return m.built.Ports }

// SwaggerOn reports whether the module asked for swagger docs
func (m *Base) SwaggerOn() bool { return m.built.SwaggerOn }
