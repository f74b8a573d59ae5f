package store

import (
	"context"

	"deploytrack/internal/platform/store/ch"
)

// chAdapter is *ch.CH behind the Clickhouse seam. Only Query differs: the
// driver's rows close with an error, the seam's do not
type chAdapter struct{ *ch.CH }

func newCHAdapter(c *ch.CH) Clickhouse { return chAdapter{CH: c} }

var (
	_ Clickhouse = chAdapter{}
	_ Pinger     = chAdapter{}
)

func (a chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := a.CH.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{rs}, nil
}

type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
