// Package module mounts the meta endpoints under /meta
package module

import (
	"context"
	"time"

	modkit "deploytrack/internal/modkit"
	"deploytrack/internal/modkit/httpkit"
	metahttp "deploytrack/internal/services/api/meta/http"
)

// ServiceName is reported by the health, service and version endpoints
const ServiceName = "deploytrack-api"

type pinger interface {
	Ping(context.Context) error
}

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	startedAt time.Time
}

// New builds the meta module. Readiness probes the sql seam and, when the
// activity log is enabled, clickhouse
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)

	m := &Module{startedAt: time.Now()}
	d := metahttp.Deps{
		ServiceName: ServiceName,
		StartedAt:   m.startedAt,
		Probes: []metahttp.Probe{
			{Name: "sql", Ping: pingOf(deps.SQL)},
			{Name: "ch", Ping: pingOf(deps.CH), Optional: true},
		},
	}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { metahttp.Register(r, d) })
	return m
}

func pingOf(v any) func(context.Context) error {
	if p, ok := v.(pinger); ok && p != nil {
		return p.Ping
	}
	return nil
}
