package store

import (
	"context"
	"fmt"
	"time"

	chx "deploytrack/internal/platform/store/ch"
	"deploytrack/internal/platform/store/pg"
	"deploytrack/internal/platform/store/sqlite"
	"deploytrack/internal/platform/store/trace"
)

// pgRetry is a var so tests can shorten it
var pgRetry = pg.DefaultRetry

func tracerFor(s *Store, on bool, db string) trace.QueryTracer {
	if !on {
		return nil
	}
	return trace.Tracer(s.Log, db)
}

// openPG returns the adapter only once the pool answers a ping. The ping
// goes to the pool directly so it never shows up in the SQL trace
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
		AppName:  cfg.AppName,
	}, tracerFor(s, cfg.PG.LogSQL, "pg"))
	if err != nil {
		return nil, err
	}
	err = p.WaitReady(ctx, pgRetry, func(err error, wait time.Duration) {
		s.Log.Warn().Err(err).Dur("backoff", wait).Msg("postgres not ready, retrying")
	})
	if err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p), nil
}

func openSQLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	db, err := sqlite.Open(ctx, sqlite.Config{
		Path:        cfg.SQLite.Path,
		BusyTimeout: cfg.SQLite.BusyTimeout,
		SlowMs:      cfg.SQLite.SlowQueryMs,
	}, tracerFor(s, cfg.SQLite.LogSQL, "sqlite"))
	if err != nil {
		return nil, fmt.Errorf("sqlite open %q: %w", cfg.SQLite.Path, err)
	}
	return newSQLiteAdapter(db), nil
}

func openCH(ctx context.Context, cfg Config, _ *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:        cfg.CH.URL,
		ClientInfo: chx.BuildClientInfo(cfg.CH.ClientName, cfg.CH.ClientTag),
	})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}
