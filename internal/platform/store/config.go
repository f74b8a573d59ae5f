package store

import (
	"fmt"
	"strings"
	"time"

	"deploytrack/internal/platform/config"
)

// Dialect names a relational engine
type Dialect string

// Supported dialects
const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DefaultURL is the embedded database used when DB_URL is unset
const DefaultURL = "sqlite:///deploytrack.db"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	// Driver selects the relational backend, empty opens none
	Driver Dialect

	PG     PGConfig
	SQLite SQLiteConfig
	CH     CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
}

// SQLiteConfig configures the embedded database
type SQLiteConfig struct {
	Path        string
	BusyTimeout time.Duration
	LogSQL      bool
	SlowQueryMs int
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled    bool
	URL        string
	ClientName string
	ClientTag  string
}

// ParseURL maps a DB_URL value onto a dialect and its connection target.
// postgres:// and postgresql:// keep the whole URL; sqlite:///path yields the
// path, with sqlite://:memory: and sqlite:// meaning an in-memory database
func ParseURL(raw string) (Dialect, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultURL
	}
	scheme, rest, ok := strings.Cut(raw, ":")
	if !ok || scheme == "" {
		return "", "", fmt.Errorf("store: db url %q has no scheme", raw)
	}
	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		return DialectPostgres, raw, nil
	case "sqlite", "sqlite3", "file":
		rest = strings.TrimPrefix(rest, "//")
		if i := strings.IndexByte(rest, '?'); i >= 0 {
			rest = rest[:i]
		}
		switch rest {
		case "", ":memory:", "/:memory:":
			return DialectSQLite, ":memory:", nil
		}
		// sqlite:///rel.db is relative, sqlite:////abs.db is absolute
		return DialectSQLite, strings.TrimPrefix(rest, "/"), nil
	default:
		return "", "", fmt.Errorf("store: unsupported db url scheme %q", scheme)
	}
}

// ConfigFrom builds a Config from the DB_ and SERVICE_ env namespaces
func ConfigFrom(cfg config.Conf, appName string) (Config, error) {
	db := cfg.Prefix("DB_")
	dialect, target, err := ParseURL(db.MayString("URL", DefaultURL))
	if err != nil {
		return Config{}, err
	}
	logSQL := db.MayBool("LOG_SQL", false)
	slow := db.MayInt("SLOW_MS", 200)

	out := Config{AppName: appName, Driver: dialect}
	switch dialect {
	case DialectPostgres:
		out.PG = PGConfig{
			URL:         target,
			MaxConns:    int32(db.MayInt("MAX_CONNS", 8)),
			LogSQL:      logSQL,
			SlowQueryMs: slow,
		}
	case DialectSQLite:
		out.SQLite = SQLiteConfig{
			Path:        target,
			BusyTimeout: db.MayDuration("BUSY_TIMEOUT", 5*time.Second),
			LogSQL:      logSQL,
			SlowQueryMs: slow,
		}
	}

	if chURL := cfg.Prefix("SERVICE_").MayString("CLICKHOUSE_DBURL", ""); chURL != "" {
		out.CH = CHConfig{
			Enabled:    true,
			URL:        chURL,
			ClientName: appName,
			ClientTag:  cfg.MayString("APP_VERSION", "dev"),
		}
	}
	return out, nil
}
