// Package module wires the activity sink and exposes its ports
package module

import (
	"deploytrack/internal/modkit"
	"deploytrack/internal/modkit/httpkit"
	dom "deploytrack/internal/services/activity/domain"
	"deploytrack/internal/services/activity/repo"
	"deploytrack/internal/services/activity/service"
)

// Ports holds the ports exposed by the activity module
type Ports struct {
	Recorder dom.RecorderPort
	Reader   dom.ReaderPort
	Worker   dom.WorkerPort
}

// Module defines the activity worker module
type Module struct {
	deps    modkit.Deps
	ports   Ports
	enabled bool
}

// New builds a clickhouse sink when deps.CH is set, a Nop otherwise
func New(deps modkit.Deps) *Module {
	var svc service.Service = service.Nop{}
	if deps.CH != nil {
		opts := FromConfig(deps.Cfg)
		svc = service.NewSink(repo.NewCH(deps.CH), service.Config{
			Batch:  opts.Batch,
			Flush:  opts.Flush,
			Buffer: opts.Buffer,
		})
	} else {
		deps.Log.Info().Msg("activity log disabled, no clickhouse configured")
	}

	m := &Module{deps: deps, enabled: deps.CH != nil}
	m.ports = Ports{Recorder: svc, Reader: svc, Worker: svc}
	return m
}

// Enabled reports whether events are persisted
func (m *Module) Enabled() bool { return m.enabled }

// Ports returns the module ports (Recorder, Reader, Worker)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "activity" }

// Prefix is empty for a worker-only module
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
