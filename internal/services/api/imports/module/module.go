// Package module wires batch imports into the API using modkit
package module

import (
	modkit "deploytrack/internal/modkit"
	"deploytrack/internal/modkit/httpkit"
	actdom "deploytrack/internal/services/activity/domain"
	cdom "deploytrack/internal/services/api/components/domain"
	ihttp "deploytrack/internal/services/api/imports/http"
	isvc "deploytrack/internal/services/api/imports/service"
)

// Ports declares the injected ports; Creator is required
type Ports struct {
	Creator  cdom.CreatorPort
	Recorder actdom.RecorderPort
}

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
}

// New constructs the imports module. Inject the components creator with
// modkit.WithPorts(Ports{Creator: ...})
func New(_ modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("imports"), modkit.WithPrefix("/imports")}, opts...)...)

	p, ok := b.Ports.(Ports)
	if !ok || p.Creator == nil {
		panic("imports: requires Ports{Creator} via modkit.WithPorts")
	}
	svc := isvc.New(p.Creator, p.Recorder)

	return &Module{Base: modkit.NewBase(b, func(r httpkit.Router) { ihttp.Register(r, svc) })}
}
