package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	perr "deploytrack/internal/platform/errors"
	ptime "deploytrack/internal/platform/time"

	"github.com/jackc/pgx/v5"
)

// ExecOne runs a write that must touch exactly one row. Zero rows is
// perr.ErrNotFound, so an update of a missing key needs no extra lookup
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if n := tag.RowsAffected(); n != 1 {
		if n == 0 {
			return perr.ErrNotFound
		}
		return fmt.Errorf("store: expected one row affected, got %d", n)
	}
	return nil
}

// Scalar reads the first column of the first row. A missing row surfaces as
// the driver's no rows error, see IsNoRows
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	err := q.QueryRow(ctx, sql, args...).Scan(&v)
	return v, err
}

// collect scans up to limit rows, or all of them when limit is 0.
// more reports whether rows were left behind
func collect[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), limit int, sql string, args ...any) (out []T, more bool, err error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	for rows.Next() {
		if limit > 0 && len(out) == limit {
			return out, true, nil
		}
		item, err := scan(rows)
		if err != nil {
			return nil, false, err
		}
		out = append(out, item)
	}
	return out, false, rows.Err()
}

// One scans exactly one row: none is perr.ErrNotFound, two or more an error
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var zero T
	got, more, err := collect(ctx, q, scan, 1, sql, args...)
	switch {
	case err != nil:
		return zero, err
	case len(got) == 0:
		return zero, perr.ErrNotFound
	case more:
		return zero, errors.New("store: expected one row, got more")
	}
	return got[0], nil
}

// Many scans every row
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	got, _, err := collect(ctx, q, scan, 0, sql, args...)
	return got, err
}

// IsNoRows matches the no rows sentinel of database/sql and pgx
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

// Timestamp scans a time column from any dialect, always in UTC: pgx hands
// back time.Time, sqlite text in several layouts or unix seconds. NULL and
// blank give the zero time
type Timestamp struct{ time.Time }

var timestampLayouts = [...]string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.DateOnly,
}

// Scan implements sql.Scanner
func (t *Timestamp) Scan(src any) error {
	var err error
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
	case time.Time:
		t.Time = v
	case int64:
		t.Time = time.Unix(v, 0)
	case []byte:
		t.Time, err = parseTimestamp(string(v))
	case string:
		t.Time, err = parseTimestamp(v)
	default:
		err = fmt.Errorf("store: cannot scan %T into Timestamp", src)
	}
	if !t.Time.IsZero() {
		t.Time = t.Time.UTC()
	}
	return err
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(n, 0), nil
	}
	return time.Time{}, fmt.Errorf("store: unrecognized timestamp %q", s)
}

// Ptr is nil for the zero time
func (t Timestamp) Ptr() *time.Time { return ptime.Ptr(t.Time) }
