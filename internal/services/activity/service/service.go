// Package service implements the activity log sink
package service

import (
	"context"
	"time"

	perr "deploytrack/internal/platform/errors"
	"deploytrack/internal/platform/logger"
	dom "deploytrack/internal/services/activity/domain"
	"deploytrack/internal/services/activity/repo"

	"github.com/google/uuid"
)

// Service implements every activity port
type Service interface {
	dom.RecorderPort
	dom.ReaderPort
	dom.WorkerPort
}

// Config controls batching
type Config struct {
	Batch  int
	Flush  time.Duration
	Buffer int
}

// Recent limits
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Sink buffers events in memory and writes them to the repo in batches
type Sink struct {
	repo repo.Repo
	cfg  Config
	in   chan dom.Event
	log  *logger.Logger
	now  func() time.Time
}

var _ Service = (*Sink)(nil)

// NewSink constructs the sink. Nothing is written until Run is started
func NewSink(r repo.Repo, cfg Config) *Sink {
	if r == nil {
		panic("activity.Sink requires a non nil Repo")
	}
	if cfg.Batch <= 0 {
		cfg.Batch = 100
	}
	if cfg.Flush <= 0 {
		cfg.Flush = 2 * time.Second
	}
	if cfg.Buffer < cfg.Batch {
		cfg.Buffer = cfg.Batch
	}
	return &Sink{
		repo: r,
		cfg:  cfg,
		in:   make(chan dom.Event, cfg.Buffer),
		log:  logger.Named("activity"),
		now:  time.Now,
	}
}

// Record stamps the event and queues it. A full buffer drops the event
func (s *Sink) Record(_ context.Context, e dom.Event) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = s.now()
	}
	e.At = e.At.UTC()
	select {
	case s.in <- e:
	default:
		s.log.Warn().Str("kind", string(e.Kind)).Str("subject", e.Subject).Msg("activity buffer full, event dropped")
	}
}

// Recent reads the newest events from the store
func (s *Sink) Recent(ctx context.Context, limit int) ([]dom.Event, error) {
	return s.repo.Recent(ctx, ClampLimit(limit))
}

// Run drains the buffer until ctx is done, then flushes what is left
func (s *Sink) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.Flush)
	defer ticker.Stop()

	batch := make([]dom.Event, 0, s.cfg.Batch)
	flush := func(ctx context.Context) {
		if len(batch) == 0 {
			return
		}
		xs := batch
		batch = make([]dom.Event, 0, s.cfg.Batch)
		if err := s.repo.Insert(ctx, xs); err != nil {
			s.log.Error().Err(err).Int("events", len(xs)).Msg("activity flush failed")
			return
		}
		s.log.Debug().Int("events", len(xs)).Msg("activity flushed")
	}

	for {
		select {
		case <-ctx.Done():
		drain:
			for {
				select {
				case e := <-s.in:
					batch = append(batch, e)
				default:
					break drain
				}
			}
			fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			flush(fctx)
			cancel()
			return nil
		case e := <-s.in:
			batch = append(batch, e)
			if len(batch) >= s.cfg.Batch {
				flush(ctx)
			}
		case <-ticker.C:
			flush(ctx)
		}
	}
}

// Nop stands in when clickhouse is not configured
type Nop struct{}

var _ Service = Nop{}

// Record discards the event
func (Nop) Record(context.Context, dom.Event) {}

// Recent reports the log as unavailable
func (Nop) Recent(context.Context, int) ([]dom.Event, error) {
	return nil, perr.Unavailablef("activity log is disabled (SERVICE_CLICKHOUSE_DBURL not set)")
}

// Run blocks until ctx is done
func (Nop) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// ClampLimit maps a requested limit into 1..MaxLimit
func ClampLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultLimit
	case n > MaxLimit:
		return MaxLimit
	}
	return n
}
