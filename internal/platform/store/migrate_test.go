package store

import (
	"context"
	"errors"
	"testing"
)

type fakeCH struct {
	stmts   []string
	execErr error
}

func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.stmts = append(f.stmts, sql)
	return f.execErr
}
func (f *fakeCH) Insert(context.Context, string, [][]any) error    { return nil }
func (f *fakeCH) Query(context.Context, string, ...any) (Rows, error) { return nil, nil }
func (f *fakeCH) Close() error                                     { return nil }

func TestSchema_SplitsStatements(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"postgres", "sqlite", "clickhouse"} {
		stmts, err := Schema(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(stmts) == 0 {
			t.Fatalf("%s: no statements", name)
		}
	}
	if _, err := Schema("oracle"); err == nil {
		t.Fatalf("expected error for unknown schema")
	}
}

func TestMigrate_SQLiteIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, err := Open(ctx, Config{Driver: DialectSQLite, SQLite: SQLiteConfig{Path: ":memory:"}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })

	for range 2 {
		if err := s.Migrate(ctx); err != nil {
			t.Fatalf("Migrate: %v", err)
		}
	}
	for _, tbl := range []string{"components", "api_requests"} {
		n, err := Scalar[int64](ctx, s.SQL, `SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = $1`, tbl)
		if err != nil || n != 1 {
			t.Fatalf("table %s: n=%d err=%v", tbl, n, err)
		}
	}
}

func TestMigrate_ClickhouseStatements(t *testing.T) {
	t.Parallel()

	ch := &fakeCH{}
	s := &Store{CH: ch}
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if len(ch.stmts) != 1 {
		t.Fatalf("ch statements = %d", len(ch.stmts))
	}

	ch.execErr = errors.New("nope")
	if err := s.Migrate(context.Background()); err == nil {
		t.Fatalf("expected ch error")
	}
}

func TestMigrate_NothingOpen(t *testing.T) {
	t.Parallel()

	if err := (&Store{}).Migrate(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	var s *Store
	if err := s.Migrate(context.Background()); err == nil {
		t.Fatalf("expected error on nil store")
	}
}
