// Package pg opens the pgx connection pool behind the postgres adapter
package pg

import (
	"context"
	"fmt"
	"time"

	"deploytrack/internal/platform/store/trace"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is what the store layer hands over from DB_*
type Config struct {
	URL      string
	MaxConns int32
	SlowMs   int
	// AppName shows up in pg_stat_activity
	AppName string
}

// PoolOption edits the parsed pool config before the pool is built
type PoolOption func(*pgxpool.Config)

// PG is the pool plus the tracing knobs the adapter reads
type PG struct {
	Pool   *pgxpool.Pool
	Tracer trace.QueryTracer
	SlowMs int
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg.URL and builds the pool. Connections are dialed lazily,
// call WaitReady before serving
func Open(ctx context.Context, cfg Config, tracer trace.QueryTracer, opts ...PoolOption) (*PG, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	for _, o := range opts {
		o(pc)
	}
	pool, err := newPool(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("pg: new pool: %w", err)
	}
	return &PG{Pool: pool, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// Retry bounds WaitReady: Attempts pings of at most Timeout each, with the
// pause doubling from Start up to Max
type Retry struct {
	Attempts int
	Timeout  time.Duration
	Start    time.Duration
	Max      time.Duration
}

// DefaultRetry rides out a database container that is still booting
var DefaultRetry = Retry{Attempts: 20, Timeout: 3 * time.Second, Start: 150 * time.Millisecond, Max: 2 * time.Second}

// WaitReady pings until the server answers, ctx ends or the attempts run
// out. onRetry, if set, sees each failure and the pause that follows
func (p *PG) WaitReady(ctx context.Context, r Retry, onRetry func(err error, wait time.Duration)) error {
	return waitReady(ctx, p.Pool.Ping, r, onRetry)
}

func waitReady(ctx context.Context, ping func(context.Context) error, r Retry, onRetry func(error, time.Duration)) error {
	var last error
	wait := r.Start
	for attempt := 1; attempt <= max(1, r.Attempts); attempt++ {
		pctx, cancel := context.WithTimeout(ctx, r.Timeout)
		last = ping(pctx)
		cancel()
		if last == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if attempt == r.Attempts {
			break
		}
		if onRetry != nil {
			onRetry(last, wait)
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait = min(wait*2, r.Max)
	}
	return fmt.Errorf("pg: not ready after %d attempts: %w", max(1, r.Attempts), last)
}

// Close is safe on a nil PG or pool
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
