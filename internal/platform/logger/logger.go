// Package logger owns the process wide zerolog logger. Console or JSON to
// stdout, optionally teed into a size rotated file
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"deploytrack/internal/platform/config/raw"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is zerolog's logger; packages take *Logger
type Logger = zerolog.Logger

// Event is a zerolog event under construction
type Event = zerolog.Event

// Options configures Init. FromEnv fills it from LOG_*
type Options struct {
	Level       string
	Format      string // console or json
	Service     string
	Writer      io.Writer
	WithCaller  bool
	SampleEvery int
	File        FileOptions
}

// FileOptions configures the rotating JSON file sink. Empty Path disables it
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// FromEnv reads LOG_* through the raw view, which logs nothing itself
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       env.Get("LEVEL", "info"),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Service:     env.Get("SERVICE", ""),
		WithCaller:  env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
		File: FileOptions{
			Path:       env.Get("FILE", ""),
			MaxSizeMB:  env.GetInt("FILE_MAX_MB", 50),
			MaxBackups: env.GetInt("FILE_BACKUPS", 3),
			MaxAgeDays: env.GetInt("FILE_MAX_AGE_DAYS", 14),
			Compress:   env.GetBool("FILE_COMPRESS", false),
		},
	}
}

var (
	initOnce sync.Once
	root     atomic.Pointer[Logger]
	file     atomic.Pointer[lumberjack.Logger]
)

// Init builds the root logger. Only the first call has any effect
func Init(o Options) {
	initOnce.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := build(o)
		root.Store(&l)
	})
}

func build(o Options) Logger {
	out := o.Writer
	if out == nil {
		out = os.Stdout
	}
	if o.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	if o.File.Path != "" {
		lj := Rotating(o.File)
		file.Store(lj)
		out = zerolog.MultiLevelWriter(out, lj)
	}

	lc := zerolog.New(out).Level(ParseLevel(o.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok {
		lc = lc.Str("go_version", bi.GoVersion)
	}
	if o.Service != "" {
		lc = lc.Str("service", o.Service)
	}
	if o.WithCaller {
		lc = lc.Caller()
	}
	l := lc.Logger()
	if o.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(o.SampleEvery)})
	}
	return l
}

// Get is the root logger, initialised from the environment on first use
func Get() *Logger {
	Init(FromEnv())
	return root.Load()
}

// Use replaces the root logger and returns a func restoring the previous
// one. Tests hand it to t.Cleanup
func Use(l Logger) (restore func()) {
	Init(FromEnv())
	prev := root.Swap(&l)
	return func() { root.Store(prev) }
}

// Rotating is the lumberjack writer behind LOG_FILE
func Rotating(f FileOptions) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   f.Path,
		MaxSize:    max(1, f.MaxSizeMB),
		MaxBackups: f.MaxBackups,
		MaxAge:     f.MaxAgeDays,
		Compress:   f.Compress,
		LocalTime:  true,
	}
}

// Close closes the rotating file if Init opened one
func Close() error {
	if lj := file.Load(); lj != nil {
		return lj.Close()
	}
	return nil
}

// ParseLevel accepts zerolog's level names plus "warning". Anything else is info
func ParseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// C is the root logger tagged with the request id chi put on ctx, if any
func C(ctx context.Context) *Logger {
	l := Get()
	id := chimw.GetReqID(ctx)
	if id == "" {
		return l
	}
	child := l.With().Str("request_id", id).Logger()
	return &child
}

// Named is the root logger tagged with a component name
func Named(component string) *Logger {
	l := Get()
	if component == "" {
		return l
	}
	child := l.With().Str("component", component).Logger()
	return &child
}
