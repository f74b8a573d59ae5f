// Package module wires audit trail queries into the API using modkit
package module

import (
	"time"

	"deploytrack/internal/adapters/outbound"
	modkit "deploytrack/internal/modkit"
	"deploytrack/internal/modkit/httpkit"
	ahttp "deploytrack/internal/services/api/audittrail/http"
	asvc "deploytrack/internal/services/api/audittrail/service"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
}

// New constructs the audit trail module. AUDIT_TIMEOUT bounds each upstream call
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("audittrail"), modkit.WithPrefix("/audit-trail")}, opts...)...)

	timeout := deps.Cfg.Prefix("AUDIT_").MayDuration("TIMEOUT", 30*time.Second)
	svc := asvc.New(outbound.NewClient(outbound.Options{Timeout: timeout}))

	m := &Module{}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { ahttp.Register(r, svc) })
	return m
}
