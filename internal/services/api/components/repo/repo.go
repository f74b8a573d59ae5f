// Package repo provides sql access for the component inventory
package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"deploytrack/internal/modkit/repokit"
	"deploytrack/internal/platform/store"
)

// Repo defines the repository contract for components
type Repo interface {
	Insert(ctx context.Context, c Row) error
	Get(ctx context.Context, uid string) (Row, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]Row, int, error)
	Update(ctx context.Context, c Row) error
	Delete(ctx context.Context, uid string) error
	DistinctTypes(ctx context.Context, category string) ([]string, error)
	Count(ctx context.Context) (int, error)
}

// Row is a components row
type Row struct {
	UID         string
	ComponentID string
	Name        string
	URLLink     string
	ChangeType  string
	Description string
	Category    string
	Type        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter narrows List. Search is matched case-insensitively against
// name, description and component_id
type Filter struct {
	Category   string
	Type       string
	ChangeType string
	Search     string
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

const columns = `uid, component_id, name, url_link, change_type, description, category, type, created_at, updated_at`

func scanRow(r repokit.Row) (Row, error) {
	var (
		c                Row
		created, updated repokit.Timestamp
	)
	if err := r.Scan(
		&c.UID,
		&c.ComponentID,
		&c.Name,
		&c.URLLink,
		&c.ChangeType,
		&c.Description,
		&c.Category,
		&c.Type,
		&created,
		&updated,
	); err != nil {
		return Row{}, err
	}
	c.CreatedAt, c.UpdatedAt = created.Time, updated.Time
	return c, nil
}

func (r *queries) Insert(ctx context.Context, c Row) error {
	return store.ExecOne(ctx, r.q, `
INSERT INTO components (`+columns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.UID, c.ComponentID, c.Name, c.URLLink, c.ChangeType, c.Description, c.Category, c.Type,
		c.CreatedAt.UTC(), c.UpdatedAt.UTC(),
	)
}

func (r *queries) Get(ctx context.Context, uid string) (Row, error) {
	return store.One(ctx, r.q, scanRow, `SELECT `+columns+` FROM components WHERE uid = $1`, uid)
}

func (r *queries) List(ctx context.Context, f Filter, limit, offset int) ([]Row, int, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Category != "" {
		conds = append(conds, "category = "+arg(f.Category))
	}
	if f.Type != "" {
		conds = append(conds, "type = "+arg(f.Type))
	}
	if f.ChangeType != "" {
		conds = append(conds, "change_type = "+arg(f.ChangeType))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := arg(repokit.Contains(s))
		conds = append(conds, fmt.Sprintf(
			`(lower(name) LIKE %[1]s ESCAPE '\' OR lower(description) LIKE %[1]s ESCAPE '\' OR lower(component_id) LIKE %[1]s ESCAPE '\')`, p))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	total, err := store.Scalar[int64](ctx, r.q, `SELECT count(*) FROM components`+where, args...)
	if err != nil {
		return nil, 0, err
	}
	sql := `SELECT ` + columns + ` FROM components` + where +
		` ORDER BY created_at DESC, uid LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset)
	rows, err := store.Many(ctx, r.q, scanRow, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, int(total), nil
}

func (r *queries) Update(ctx context.Context, c Row) error {
	return store.ExecOne(ctx, r.q, `
UPDATE components
SET component_id = $2, name = $3, url_link = $4, change_type = $5, description = $6,
    category = $7, type = $8, updated_at = $9
WHERE uid = $1`,
		c.UID, c.ComponentID, c.Name, c.URLLink, c.ChangeType, c.Description, c.Category, c.Type,
		c.UpdatedAt.UTC(),
	)
}

func (r *queries) Delete(ctx context.Context, uid string) error {
	return store.ExecOne(ctx, r.q, `DELETE FROM components WHERE uid = $1`, uid)
}

func (r *queries) DistinctTypes(ctx context.Context, category string) ([]string, error) {
	out, err := store.Many(ctx, r.q, func(row repokit.Row) (string, error) {
		var t string
		err := row.Scan(&t)
		return t, err
	}, `SELECT DISTINCT type FROM components WHERE category = $1 ORDER BY type`, category)
	if out == nil && err == nil {
		out = []string{}
	}
	return out, err
}

func (r *queries) Count(ctx context.Context) (int, error) {
	n, err := store.Scalar[int64](ctx, r.q, `SELECT count(*) FROM components`)
	return int(n), err
}
