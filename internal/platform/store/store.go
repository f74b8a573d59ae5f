// Package store opens the configured databases and exposes them to repos
// through small seams: TxRunner for postgres or sqlite, Clickhouse for the
// activity log
package store

import (
	"context"
	"errors"
	"fmt"

	"deploytrack/internal/platform/logger"
)

// Store holds whatever Open connected. Unconfigured seams stay nil
type Store struct {
	// Log is handed to tracers and retry warnings; the zero value is silent
	Log logger.Logger

	SQL     TxRunner
	Dialect Dialect
	CH      Clickhouse
}

type sqlOpener func(context.Context, Config, *Store) (TxRunner, error)

var sqlOpeners = map[Dialect]sqlOpener{
	DialectPostgres: openPG,
	DialectSQLite:   openSQLite,
}

// Open connects the relational driver named by cfg.Driver, if any, and
// clickhouse when cfg.CH.Enabled. On error nothing is left open
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	if cfg.Driver != "" {
		open, ok := sqlOpeners[cfg.Driver]
		if !ok {
			return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
		}
		sql, err := open(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.SQL, s.Dialect = sql, cfg.Driver
	}

	if cfg.CH.Enabled {
		ch, err := openCH(ctx, cfg, s)
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.CH = ch
	}
	return s, nil
}

// Guard pings every open seam that can be pinged and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil store")
	}
	var errs []error
	check := func(name string, seam any) {
		if p, ok := seam.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	}
	check(string(s.Dialect), s.SQL)
	check("ch", s.CH)
	return errors.Join(errs...)
}

// Close closes clickhouse then the relational pool
func (s *Store) Close(context.Context) error {
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.SQL.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
