// Package http serves the meta endpoints: liveness, readiness and build info
package http

import (
	"context"
	"net/http"
	"time"

	"deploytrack/internal/core/version"
	"deploytrack/internal/modkit/httpkit"
)

const readyTimeout = 2 * time.Second

// Probe is one readiness dependency. A nil Ping means the dependency is not
// configured. Optional probes never degrade readiness by being absent
type Probe struct {
	Name     string
	Ping     func(context.Context) error
	Optional bool
}

// Deps are what the meta handlers report on
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Probes      []Probe
	Now         func() time.Time
}

// Register mounts /health, /ready, /version and /service
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	httpkit.Get(r, "/health", d.health)
	httpkit.Get(r, "/ready", d.ready)
	httpkit.Get(r, "/version", d.version)
	httpkit.Get(r, "/service", d.service)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"deploytrack-api"`
	Started string `json:"started" example:"2026-01-02T13:00:00Z"`
	Now     string `json:"now"     example:"2026-01-02T13:05:00Z"`
}

// ReadyCheck is the outcome of one probe: ok, fail or skipped
type ReadyCheck struct {
	Name   string `json:"name"            example:"sql"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"database is closed"`
}

// ReadyResponse rolls the probes up into ok, degraded or fail
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-01-02T13:05:00Z"`
}

// ServiceResponse is the service name and uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"deploytrack-api"`
	Started string `json:"started" example:"2026-01-02T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (d Deps) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: d.ServiceName, Started: stamp(d.StartedAt), Now: stamp(d.Now())}, nil
}

// @Summary Readiness with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (d Deps) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	out := ReadyResponse{Status: "ok", Checks: make([]ReadyCheck, 0, len(d.Probes)), Now: stamp(d.Now())}
	for _, p := range d.Probes {
		c := probe(ctx, p)
		out.Checks = append(out.Checks, c)
		out.Status = worst(out.Status, rollup(c, p.Optional))
	}
	return out, nil
}

func probe(ctx context.Context, p Probe) ReadyCheck {
	if p.Ping == nil {
		return ReadyCheck{Name: p.Name, Status: "skipped"}
	}
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: p.Name, Status: "fail", Error: err.Error()}
	}
	return ReadyCheck{Name: p.Name, Status: "ok"}
}

func rollup(c ReadyCheck, optional bool) string {
	switch {
	case c.Status == "fail":
		return "fail"
	case c.Status == "skipped" && !optional:
		return "degraded"
	}
	return "ok"
}

var severity = map[string]int{"ok": 0, "degraded": 1, "fail": 2}

func worst(a, b string) string {
	if severity[b] > severity[a] {
		return b
	}
	return a
}

// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (d Deps) version(*http.Request) (any, error) {
	return version.Info(d.ServiceName), nil
}

// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (d Deps) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    d.ServiceName,
		Started: stamp(d.StartedAt),
		Uptime:  int64(d.Now().Sub(d.StartedAt) / time.Second),
	}, nil
}
