package store

import (
	"testing"
	"time"

	"deploytrack/internal/platform/config"
)

func TestParseURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		dialect Dialect
		target  string
		wantErr bool
	}{
		{"", DialectSQLite, "deploytrack.db", false},
		{"sqlite:///deploytrack.db", DialectSQLite, "deploytrack.db", false},
		{"sqlite:////var/lib/dt/app.db", DialectSQLite, "/var/lib/dt/app.db", false},
		{"sqlite:///data/app.db?mode=rwc", DialectSQLite, "data/app.db", false},
		{"sqlite://:memory:", DialectSQLite, ":memory:", false},
		{"sqlite://", DialectSQLite, ":memory:", false},
		{"postgres://u:p@db:5432/dt?sslmode=disable", DialectPostgres, "postgres://u:p@db:5432/dt?sslmode=disable", false},
		{"postgresql://db/dt", DialectPostgres, "postgresql://db/dt", false},
		{"mysql://db/dt", "", "", true},
		{"no-scheme", "", "", true},
	}
	for _, tc := range cases {
		d, target, err := ParseURL(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseURL(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseURL(%q) error: %v", tc.in, err)
		}
		if d != tc.dialect || target != tc.target {
			t.Fatalf("ParseURL(%q) = (%q, %q) want (%q, %q)", tc.in, d, target, tc.dialect, tc.target)
		}
	}
}

func TestConfigFrom(t *testing.T) {
	t.Setenv("DB_URL", "postgres://u:p@db/dt")
	t.Setenv("DB_MAX_CONNS", "4")
	t.Setenv("DB_LOG_SQL", "true")
	t.Setenv("DB_SLOW_MS", "50")
	t.Setenv("SERVICE_CLICKHOUSE_DBURL", "clickhouse://ch:9000/dt")
	t.Setenv("APP_VERSION", "1.2.3")

	cfg, err := ConfigFrom(config.New(), "deploytrack-api")
	if err != nil {
		t.Fatalf("ConfigFrom: %v", err)
	}
	if cfg.Driver != DialectPostgres || cfg.PG.URL != "postgres://u:p@db/dt" || cfg.PG.MaxConns != 4 {
		t.Fatalf("pg config mismatch: %+v", cfg)
	}
	if !cfg.PG.LogSQL || cfg.PG.SlowQueryMs != 50 {
		t.Fatalf("pg trace knobs mismatch: %+v", cfg.PG)
	}
	if !cfg.CH.Enabled || cfg.CH.ClientName != "deploytrack-api" || cfg.CH.ClientTag != "1.2.3" {
		t.Fatalf("ch config mismatch: %+v", cfg.CH)
	}
}

func TestConfigFrom_DefaultsToSQLite(t *testing.T) {
	t.Setenv("DB_URL", "")
	t.Setenv("SERVICE_CLICKHOUSE_DBURL", "")

	cfg, err := ConfigFrom(config.New(), "cli")
	if err != nil {
		t.Fatalf("ConfigFrom: %v", err)
	}
	if cfg.Driver != DialectSQLite || cfg.SQLite.Path != "deploytrack.db" {
		t.Fatalf("sqlite default mismatch: %+v", cfg)
	}
	if cfg.SQLite.BusyTimeout != 5*time.Second || cfg.CH.Enabled {
		t.Fatalf("defaults mismatch: %+v", cfg)
	}
}

func TestConfigFrom_BadScheme(t *testing.T) {
	t.Setenv("DB_URL", "mysql://db")
	if _, err := ConfigFrom(config.New(), "x"); err == nil {
		t.Fatalf("expected error")
	}
}
