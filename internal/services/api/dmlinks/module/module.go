// Package module wires dmlinks into the API using modkit
package module

import (
	"deploytrack/internal/core/formdata"
	modkit "deploytrack/internal/modkit"
	"deploytrack/internal/modkit/httpkit"
	"deploytrack/internal/platform/config"
	dhttp "deploytrack/internal/services/api/dmlinks/http"
	dsvc "deploytrack/internal/services/api/dmlinks/service"
)

// Options locates the mapping file and the link host
type Options struct {
	Host    string
	Mapping string
}

// FromConfig reads with DMLINKS_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("DMLINKS_")
	return Options{
		Host:    c.MayString("HOST", formdata.DefaultHost),
		Mapping: c.MayString("MAPPING", "indexed-data-managers.json"),
	}
}

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc *dsvc.Svc
}

// New loads the mapping once and mounts the lookup routes
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("dmlinks"), modkit.WithPrefix("/dm-links")}, opts...)...)

	o := FromConfig(deps.Cfg)
	svc := dsvc.Load(o.Host, o.Mapping)

	m := &Module{svc: svc}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { dhttp.Register(r, svc) })
	return m
}
