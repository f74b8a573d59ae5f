// Package module wires the API client into the API using modkit
package module

import (
	"time"

	"deploytrack/internal/adapters/outbound"
	modkit "deploytrack/internal/modkit"
	"deploytrack/internal/modkit/httpkit"
	"deploytrack/internal/platform/config"
	actdom "deploytrack/internal/services/activity/domain"
	ahttp "deploytrack/internal/services/api/apiclient/http"
	arepo "deploytrack/internal/services/api/apiclient/repo"
	asvc "deploytrack/internal/services/api/apiclient/service"
)

// Ports declares what the API client consumes
type Ports struct {
	Recorder actdom.RecorderPort
}

// Options tunes the outbound client
type Options struct {
	Timeout time.Duration
	MaxBody int
}

// FromConfig reads with APICLIENT_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("APICLIENT_")
	return Options{
		Timeout: c.MayDuration("TIMEOUT", 60*time.Second),
		MaxBody: c.MayInt("MAX_BODY", 10<<20),
	}
}

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
}

// New constructs the API client module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("apiclient"), modkit.WithPrefix("/requests")}, opts...)...)

	var rec actdom.RecorderPort
	if p, ok := b.Ports.(Ports); ok {
		rec = p.Recorder
	}
	o := FromConfig(deps.Cfg)
	client := outbound.NewClient(outbound.Options{Timeout: o.Timeout, MaxBody: int64(o.MaxBody)})
	svc := asvc.New(deps.RequireSQL("apiclient"), arepo.NewSQL(), client, rec)

	m := &Module{}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { ahttp.Register(r, svc) })
	return m
}
