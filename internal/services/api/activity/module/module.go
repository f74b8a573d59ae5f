// Package module mounts the activity feed using modkit
package module

import (
	modkit "deploytrack/internal/modkit"
	"deploytrack/internal/modkit/httpkit"
	actdom "deploytrack/internal/services/activity/domain"
	ahttp "deploytrack/internal/services/api/activity/http"
)

// Ports declares the injected reader
type Ports struct {
	Reader actdom.ReaderPort
}

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
}

// New constructs the feed. Panics when no Reader is injected
func New(_ modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("activity-feed"), modkit.WithPrefix("/activity")}, opts...)...)

	p, ok := b.Ports.(Ports)
	if !ok || p.Reader == nil {
		panic("activity feed requires Ports{Reader} via modkit.WithPorts")
	}

	m := &Module{}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { ahttp.Register(r, p.Reader) })
	return m
}
