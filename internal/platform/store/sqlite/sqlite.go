// Package sqlite provides an embedded SQLite client on database/sql with the
// pure Go modernc driver and optional query tracing
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"deploytrack/internal/platform/store/trace"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// DriverName is the database/sql driver registered by modernc
const DriverName = "sqlite"

// Config configures the embedded database
type Config struct {
	// Path is a file path or ":memory:"
	Path        string
	BusyTimeout time.Duration
	SlowMs      int
}

// DB is a sqlite client with optional tracer
type DB struct {
	SQL    *sql.DB
	Tracer trace.QueryTracer
	SlowMs int
}

var openDB = sql.Open

// DSN builds the modernc connection string with the pragmas every
// connection needs: busy timeout, foreign keys and WAL for file databases
func DSN(cfg Config) string {
	bt := cfg.BusyTimeout
	if bt <= 0 {
		bt = 5 * time.Second
	}
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", bt.Milliseconds()))
	q.Add("_pragma", "foreign_keys(1)")

	path := strings.TrimSpace(cfg.Path)
	if path == "" || path == ":memory:" {
		return "file::memory:?" + q.Encode()
	}
	q.Add("_pragma", "journal_mode(WAL)")
	return "file:" + path + "?" + q.Encode()
}

// Open opens the database and verifies it answers a ping
func Open(ctx context.Context, cfg Config, tracer trace.QueryTracer) (*DB, error) {
	db, err := openDB(DriverName, DSN(cfg))
	if err != nil {
		return nil, err
	}
	// one connection serializes writers and keeps :memory: databases alive
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{SQL: db, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// Close closes the database
func (d *DB) Close() error {
	if d == nil || d.SQL == nil {
		return nil
	}
	return d.SQL.Close()
}

// Rebind rewrites Postgres style $N placeholders into positional ? markers and
// returns the argument list reordered to match. Placeholders inside single
// quoted literals are left alone
func Rebind(query string, args []any) (string, []any, error) {
	if !strings.Contains(query, "$") {
		return query, args, nil
	}
	var b strings.Builder
	b.Grow(len(query))
	out := make([]any, 0, len(args))
	inQuote := false

	for i := 0; i < len(query); i++ {
		c := query[i]
		if c == '\'' {
			inQuote = !inQuote
			b.WriteByte(c)
			continue
		}
		if c != '$' || inQuote {
			b.WriteByte(c)
			continue
		}
		j := i + 1
		for j < len(query) && query[j] >= '0' && query[j] <= '9' {
			j++
		}
		if j == i+1 {
			b.WriteByte(c)
			continue
		}
		n := 0
		for _, d := range query[i+1 : j] {
			n = n*10 + int(d-'0')
		}
		if n < 1 || n > len(args) {
			return "", nil, fmt.Errorf("sqlite: placeholder $%d out of range (%d args)", n, len(args))
		}
		b.WriteByte('?')
		out = append(out, args[n-1])
		i = j - 1
	}
	return b.String(), out, nil
}
