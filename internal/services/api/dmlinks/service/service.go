// Package service resolves form_data_id values found in JSON documents
package service

import (
	"context"

	"deploytrack/internal/core/formdata"
	"deploytrack/internal/platform/logger"
	"deploytrack/internal/services/api/dmlinks/domain"
)

// Service defines the service contract for dmlinks
type Service interface{ domain.ServicePort }

// Svc holds a read-only resolver built once at startup
type Svc struct {
	resolver formdata.Resolver
	info     domain.MappingInfo
}

var _ Service = (*Svc)(nil)

// New wraps an already loaded mapping
func New(host string, m formdata.Mapping, source string) *Svc {
	if m == nil {
		m = formdata.Mapping{}
	}
	r := formdata.Resolver{Host: host, Mapping: m}
	if r.Host == "" {
		r.Host = formdata.DefaultHost
	}
	return &Svc{resolver: r, info: domain.MappingInfo{Entries: len(m), Source: source, Host: r.Host}}
}

// Load reads the mapping file. A missing or broken file leaves every id
// unresolved and is logged, not returned
func Load(host, path string) *Svc {
	m, err := formdata.LoadMapping(path)
	s := New(host, m, path)
	if err != nil {
		logger.Named("dmlinks").Warn().Err(err).Str("path", path).Msg("form data mapping unavailable, all ids will be unresolved")
		s.info.Error = err.Error()
	}
	return s
}

// Find extracts and resolves every form_data_id in raw
func (s *Svc) Find(_ context.Context, raw []byte) (formdata.Resolution, error) {
	return formdata.Find(raw, s.resolver)
}

// Mapping reports what was loaded
func (s *Svc) Mapping(context.Context) domain.MappingInfo { return s.info }
