package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxRows serves a fixed column set of string rows
type pgxRows struct {
	pgx.Rows // nil, only the methods below are called
	cols     []string
	data     [][]string
	idx      int
	err      error
	closed   bool
}

func (r *pgxRows) Next() bool {
	if r.err != nil {
		return false
	}
	r.idx++
	return r.idx < len(r.data)
}
func (r *pgxRows) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		p, ok := d.(*string)
		if !ok {
			return errors.New("want *string")
		}
		*p = r.data[r.idx][i]
	}
	return nil
}
func (r *pgxRows) Err() error { return r.err }
func (r *pgxRows) Close()     { r.closed = true }
func (r *pgxRows) FieldDescriptions() []pgconn.FieldDescription {
	out := make([]pgconn.FieldDescription, len(r.cols))
	for i, c := range r.cols {
		out[i] = pgconn.FieldDescription{Name: c}
	}
	return out
}

type pgxRow struct{ err error }

func (r pgxRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if p, ok := dest[0].(*string); ok {
		*p = "one"
	}
	return nil
}

// pgxTx is a pgx.Tx whose statement methods are scripted
type pgxTx struct {
	pgx.Tx
	execErr  error
	queryErr error
	rowErr   error
	rows     *pgxRows
}

func (f *pgxTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}
func (f *pgxTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.rows, nil
}
func (f *pgxTx) QueryRow(context.Context, string, ...any) pgx.Row { return pgxRow{err: f.rowErr} }

func TestTag_WrapsPgconn(t *testing.T) {
	t.Parallel()

	tg := tag{pgconn.NewCommandTag("DELETE 3")}
	if tg.String() != "DELETE 3" || tg.RowsAffected() != 3 {
		t.Fatalf("tag = %q / %d", tg.String(), tg.RowsAffected())
	}
}

func TestTxQuerier_TracesEveryStatement(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tr := &capTracer{}
	fx := &pgxTx{rows: &pgxRows{cols: []string{"uid", "name"}, data: [][]string{{"u1", "a"}, {"u2", "b"}}, idx: -1}}
	q := txQuerier{tx: fx, tracer: tr, slowMs: -1}

	ct, err := q.Exec(ctx, "UPDATE components SET name = $1", "x")
	if err != nil || ct.RowsAffected() != 1 {
		t.Fatalf("Exec = %v, %v", ct, err)
	}

	rs, err := q.Query(ctx, "SELECT uid, name FROM components")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if cols := rs.Columns(); len(cols) != 2 || cols[1] != "name" {
		t.Fatalf("Columns = %v", cols)
	}
	var names []string
	for rs.Next() {
		var uid, name string
		if err := rs.Scan(&uid, &name); err != nil {
			t.Fatalf("Scan: %v", err)
		}
		names = append(names, name)
	}
	rs.Close()
	if len(names) != 2 || !fx.rows.closed {
		t.Fatalf("names=%v closed=%v", names, fx.rows.closed)
	}

	var one string
	if err := q.QueryRow(ctx, "SELECT 'one'").Scan(&one); err != nil || one != "one" {
		t.Fatalf("QueryRow = %q, %v", one, err)
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()
	if len(tr.evs) != 3 {
		t.Fatalf("trace events = %d", len(tr.evs))
	}
	for _, ev := range tr.evs {
		if ev.Slow {
			t.Fatalf("slow marking should be off: %+v", ev)
		}
	}
}

func TestTxQuerier_PropagatesErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	boom := errors.New("boom")
	q := txQuerier{tx: &pgxTx{execErr: boom, queryErr: boom, rowErr: pgx.ErrNoRows}}

	if _, err := q.Exec(ctx, "x"); !errors.Is(err, boom) {
		t.Fatalf("Exec err = %v", err)
	}
	if _, err := q.Query(ctx, "x"); !errors.Is(err, boom) {
		t.Fatalf("Query err = %v", err)
	}
	var s string
	if err := q.QueryRow(ctx, "x").Scan(&s); !IsNoRows(err) {
		t.Fatalf("QueryRow err = %v", err)
	}

	rs := rows{r: &pgxRows{err: boom}}
	if rs.Next() || !errors.Is(rs.Err(), boom) {
		t.Fatalf("rows error not surfaced")
	}
}
