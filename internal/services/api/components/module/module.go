// Package module wires the component inventory into the API using modkit
package module

import (
	"context"

	modkit "deploytrack/internal/modkit"
	"deploytrack/internal/modkit/httpkit"
	"deploytrack/internal/modkit/module"
	actdom "deploytrack/internal/services/activity/domain"
	chttp "deploytrack/internal/services/api/components/http"
	crepo "deploytrack/internal/services/api/components/repo"
	csvc "deploytrack/internal/services/api/components/service"
)

// Ports declares the injected activity recorder and the ports this module exposes
type Ports struct {
	Recorder actdom.RecorderPort
}

// Exposed is what other modules may consume from components
type Exposed struct {
	Service csvc.Service
}

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc *csvc.Svc
}

// New constructs the components module. A Recorder may be injected with modkit.WithPorts(Ports{...})
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("components"), modkit.WithPrefix("/components")}, opts...)...)

	var rec actdom.RecorderPort
	if p, ok := b.Ports.(Ports); ok {
		rec = p.Recorder
	}
	svc := csvc.New(deps.RequireSQL("components"), crepo.NewSQL(), rec)

	m := &Module{svc: svc}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { chttp.Register(r, svc) })
	return m
}

// Ports exposes the service so imports can create components through it
func (m *Module) Ports() any { return Exposed{Service: m.svc} }

// Seed writes the sample inventory into an empty table
func (m *Module) Seed(ctx context.Context) (int, error) { return m.svc.Seed(ctx) }

var _ module.Module = (*Module)(nil)
