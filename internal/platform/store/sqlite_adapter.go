package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"deploytrack/internal/platform/store/sqlite"
	"deploytrack/internal/platform/store/trace"
)

// sqliteAdapter wraps sqlite.DB and implements RowQuerier + TxRunner.
// Statements are rebound from $N placeholders before they reach the driver
type sqliteAdapter struct {
	db *sqlite.DB
}

func newSQLiteAdapter(db *sqlite.DB) *sqliteAdapter { return &sqliteAdapter{db: db} }

// dbtx is the part of *sql.DB and *sql.Tx the adapter needs
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (a *sqliteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.db == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.db.SQL.PingContext(ctx)
}

func (a *sqliteAdapter) Close() error { return a.db.Close() }

func (a *sqliteAdapter) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return sqliteQuerier{x: a.db.SQL, tracer: a.db.Tracer, slowMs: a.db.SlowMs}.Exec(ctx, q, args...)
}

func (a *sqliteAdapter) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return sqliteQuerier{x: a.db.SQL, tracer: a.db.Tracer, slowMs: a.db.SlowMs}.Query(ctx, q, args...)
}

func (a *sqliteAdapter) QueryRow(ctx context.Context, q string, args ...any) Row {
	return sqliteQuerier{x: a.db.SQL, tracer: a.db.Tracer, slowMs: a.db.SlowMs}.QueryRow(ctx, q, args...)
}

func (a *sqliteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	q := sqliteQuerier{x: tx, tracer: a.db.Tracer, slowMs: a.db.SlowMs}
	if err := fn(q); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// sqliteQuerier runs statements against a pool or a transaction
type sqliteQuerier struct {
	x      dbtx
	tracer trace.QueryTracer
	slowMs int
}

func (s sqliteQuerier) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	start := time.Now()
	bq, bargs, err := sqlite.Rebind(q, args)
	if err != nil {
		return nil, err
	}
	res, err := s.x.ExecContext(ctx, bq, bargs...)
	trace.Emit(ctx, s.tracer, s.slowMs, q, args, start, err)
	if err != nil {
		return nil, err
	}
	n, _ := res.RowsAffected()
	return sqliteTag{n: n}, nil
}

func (s sqliteQuerier) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	start := time.Now()
	bq, bargs, err := sqlite.Rebind(q, args)
	if err != nil {
		return nil, err
	}
	rs, err := s.x.QueryContext(ctx, bq, bargs...)
	trace.Emit(ctx, s.tracer, s.slowMs, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return sqlRows{r: rs}, nil
}

func (s sqliteQuerier) QueryRow(ctx context.Context, q string, args ...any) Row {
	rs, err := s.Query(ctx, q, args...)
	return sqlRow{rows: rs, err: err}
}

// sqlRow mirrors *sql.Row on top of our Rows so a missing row surfaces as
// sql.ErrNoRows and the cursor is always released
type sqlRow struct {
	rows Rows
	err  error
}

func (r sqlRow) Scan(dst ...any) error {
	if r.err != nil {
		return r.err
	}
	defer r.rows.Close()
	if !r.rows.Next() {
		if err := r.rows.Err(); err != nil {
			return err
		}
		return sql.ErrNoRows
	}
	return r.rows.Scan(dst...)
}

type sqlRows struct{ r *sql.Rows }

func (x sqlRows) Next() bool            { return x.r.Next() }
func (x sqlRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x sqlRows) Err() error            { return x.r.Err() }
func (x sqlRows) Close()                { _ = x.r.Close() }
func (x sqlRows) Columns() []string {
	cols, _ := x.r.Columns()
	return cols
}

type sqliteTag struct{ n int64 }

func (t sqliteTag) String() string      { return fmt.Sprintf("ROWS %d", t.n) }
func (t sqliteTag) RowsAffected() int64 { return t.n }
