// Package repo provides clickhouse access for the activity log
package repo

import (
	"context"
	"fmt"
	"time"

	"deploytrack/internal/modkit/repokit"
	"deploytrack/internal/platform/store"
	"deploytrack/internal/services/activity/domain"

	"github.com/google/uuid"
)

// Table is the clickhouse table events land in
const Table = "activity_events"

// Repo defines the repository contract for the activity log
type Repo interface {
	Insert(ctx context.Context, xs []domain.Event) error
	Recent(ctx context.Context, limit int) ([]domain.Event, error)
}

// CH implements Repo on the store clickhouse seam
type CH struct{ ch store.Clickhouse }

// NewCH binds the repo to an open clickhouse
func NewCH(ch store.Clickhouse) *CH {
	if ch == nil {
		panic("activity repo requires a non nil clickhouse")
	}
	return &CH{ch: ch}
}

// Insert appends events in column order id, at, kind, subject, detail
func (r *CH) Insert(ctx context.Context, xs []domain.Event) error {
	rows := make([][]any, 0, len(xs))
	for _, e := range xs {
		id, err := uuid.Parse(e.ID)
		if err != nil {
			id = uuid.New()
		}
		rows = append(rows, []any{id, e.At.UTC(), string(e.Kind), e.Subject, e.Detail})
	}
	if err := r.ch.Insert(ctx, Table, rows); err != nil {
		return fmt.Errorf("insert %d activity events: %w", len(rows), err)
	}
	return nil
}

// Recent returns up to limit events, newest first
func (r *CH) Recent(ctx context.Context, limit int) ([]domain.Event, error) {
	sql := fmt.Sprintf(`SELECT toString(id), at, kind, subject, detail FROM %s ORDER BY at DESC, id LIMIT %d`, Table, limit)
	rows, err := r.ch.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	return scan(rows)
}

func scan(rows repokit.Rows) ([]domain.Event, error) {
	defer rows.Close()
	out := []domain.Event{}
	for rows.Next() {
		var (
			e    domain.Event
			kind string
			at   time.Time
		)
		if err := rows.Scan(&e.ID, &at, &kind, &e.Subject, &e.Detail); err != nil {
			return nil, err
		}
		e.At, e.Kind = at.UTC(), domain.Kind(kind)
		out = append(out, e)
	}
	return out, rows.Err()
}
