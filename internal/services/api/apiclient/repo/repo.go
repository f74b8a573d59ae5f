// Package repo provides sql access for saved API client requests
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"deploytrack/internal/modkit/repokit"
	"deploytrack/internal/platform/store"
	"deploytrack/internal/services/api/apiclient/domain"
)

// Repo defines the repository contract for saved requests
type Repo interface {
	Insert(ctx context.Context, r Row) error
	Get(ctx context.Context, uid string) (Row, error)
	List(ctx context.Context, search, method string) ([]Row, error)
	Update(ctx context.Context, r Row) error
	Delete(ctx context.Context, uid string) error
	MarkRun(ctx context.Context, uid string, status int, at time.Time) error
}

// Row is an api_requests row with its JSON columns decoded
type Row struct {
	UID         string
	Name        string
	Description string
	Spec        domain.RequestSpec
	LastStatus  *int
	LastRunAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type (
	// SQL implements the Repo interface on either relational dialect
	SQL struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewSQL creates a new repository binder
func NewSQL() repokit.Binder[Repo] { return SQL{} }

// Bind binds a queryer to the Repo implementation
func (SQL) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const columns = `uid, name, description, method, url, query_params, headers, auth, body, last_status, last_run_at, created_at, updated_at`

// jsonCols encodes the structured parts of a spec into their TEXT columns
func jsonCols(s domain.RequestSpec) (params, headers, auth, body string, err error) {
	enc := func(v any) string {
		if err != nil {
			return ""
		}
		var b []byte
		b, err = json.Marshal(v)
		return string(b)
	}
	if s.QueryParams == nil {
		s.QueryParams = []domain.KV{}
	}
	if s.Headers == nil {
		s.Headers = []domain.KV{}
	}
	params, headers, auth, body = enc(s.QueryParams), enc(s.Headers), enc(s.Auth), enc(s.Body)
	return
}

func scanRow(r repokit.Row) (Row, error) {
	var (
		out                         Row
		params, headers, auth, body string
		last                        *int64
		lastRun, created, updated   repokit.Timestamp
	)
	if err := r.Scan(
		&out.UID,
		&out.Name,
		&out.Description,
		&out.Spec.Method,
		&out.Spec.URL,
		&params,
		&headers,
		&auth,
		&body,
		&last,
		&lastRun,
		&created,
		&updated,
	); err != nil {
		return Row{}, err
	}
	for _, c := range []struct {
		name string
		src  string
		dst  any
	}{
		{"query_params", params, &out.Spec.QueryParams},
		{"headers", headers, &out.Spec.Headers},
		{"auth", auth, &out.Spec.Auth},
		{"body", body, &out.Spec.Body},
	} {
		if err := json.Unmarshal([]byte(c.src), c.dst); err != nil {
			return Row{}, fmt.Errorf("decode %s of request %s: %w", c.name, out.UID, err)
		}
	}
	if last != nil {
		n := int(*last)
		out.LastStatus = &n
	}
	out.LastRunAt = lastRun.Ptr()
	out.CreatedAt, out.UpdatedAt = created.Time, updated.Time
	return out, nil
}

func (q *queries) Insert(ctx context.Context, r Row) error {
	params, headers, auth, body, err := jsonCols(r.Spec)
	if err != nil {
		return err
	}
	return store.ExecOne(ctx, q.q, `
INSERT INTO api_requests (uid, name, description, method, url, query_params, headers, auth, body, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		r.UID, r.Name, r.Description, r.Spec.Method, r.Spec.URL, params, headers, auth, body,
		r.CreatedAt.UTC(), r.UpdatedAt.UTC(),
	)
}

func (q *queries) Get(ctx context.Context, uid string) (Row, error) {
	return store.One(ctx, q.q, scanRow, `SELECT `+columns+` FROM api_requests WHERE uid = $1`, uid)
}

func (q *queries) List(ctx context.Context, search, method string) ([]Row, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if method != "" {
		conds = append(conds, "method = "+arg(method))
	}
	if s := strings.TrimSpace(search); s != "" {
		p := arg(repokit.Contains(s))
		conds = append(conds, fmt.Sprintf(
			`(lower(name) LIKE %[1]s ESCAPE '\' OR lower(url) LIKE %[1]s ESCAPE '\' OR lower(description) LIKE %[1]s ESCAPE '\')`, p))
	}
	sql := `SELECT ` + columns + ` FROM api_requests`
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	rows, err := store.Many(ctx, q.q, scanRow, sql+` ORDER BY updated_at DESC, uid`, args...)
	if rows == nil && err == nil {
		rows = []Row{}
	}
	return rows, err
}

func (q *queries) Update(ctx context.Context, r Row) error {
	params, headers, auth, body, err := jsonCols(r.Spec)
	if err != nil {
		return err
	}
	return store.ExecOne(ctx, q.q, `
UPDATE api_requests
SET name = $2, description = $3, method = $4, url = $5, query_params = $6, headers = $7,
    auth = $8, body = $9, updated_at = $10
WHERE uid = $1`,
		r.UID, r.Name, r.Description, r.Spec.Method, r.Spec.URL, params, headers, auth, body,
		r.UpdatedAt.UTC(),
	)
}

func (q *queries) Delete(ctx context.Context, uid string) error {
	return store.ExecOne(ctx, q.q, `DELETE FROM api_requests WHERE uid = $1`, uid)
}

func (q *queries) MarkRun(ctx context.Context, uid string, status int, at time.Time) error {
	return store.ExecOne(ctx, q.q,
		`UPDATE api_requests SET last_status = $2, last_run_at = $3 WHERE uid = $1`, uid, status, at.UTC())
}
