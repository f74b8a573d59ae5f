// Package modkit provides module wiring and core deps
package modkit

import (
	"deploytrack/internal/modkit/repokit"
	"deploytrack/internal/platform/config"
	"deploytrack/internal/platform/logger"
	"deploytrack/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// SQL is the relational seam, Dialect says which engine is behind it
	SQL     repokit.TxRunner
	Dialect store.Dialect

	// CH is nil when the activity log is disabled
	CH store.Clickhouse
}

// FromStore fills the storage seams from an opened store
func FromStore(s *store.Store, cfg config.Conf, log logger.Logger) Deps {
	d := Deps{Log: log, Cfg: cfg}
	if s != nil {
		d.SQL, d.Dialect, d.CH = s.SQL, s.Dialect, s.CH
	}
	return d
}

// RequireSQL panics when a module that persists rows is built without a database
func (d Deps) RequireSQL(module string) repokit.TxRunner {
	if d.SQL == nil {
		panic(module + ": requires a non nil SQL TxRunner")
	}
	return d.SQL
}
