package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Schema returns the statements for a dialect file under schema/, in file order
func Schema(name string) ([]string, error) {
	b, err := schemaFS.ReadFile("schema/" + name + ".sql")
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", name, err)
	}
	var out []string
	for stmt := range strings.SplitSeq(string(b), ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// Migrate applies the idempotent schema for the active dialect and, when
// clickhouse is enabled, the activity table
func (s *Store) Migrate(ctx context.Context) error {
	if s == nil || (s.SQL == nil && s.CH == nil) {
		return errors.New("store: nothing to migrate")
	}
	if s.SQL != nil {
		stmts, err := Schema(string(s.Dialect))
		if err != nil {
			return err
		}
		err = s.SQL.Tx(ctx, func(q RowQuerier) error {
			for i, stmt := range stmts {
				if _, err := q.Exec(ctx, stmt); err != nil {
					return fmt.Errorf("%s migrate #%d: %w", s.Dialect, i+1, err)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		s.Log.Info().Str("dialect", string(s.Dialect)).Int("statements", len(stmts)).Msg("schema applied")
	}
	if s.CH != nil {
		stmts, err := Schema("clickhouse")
		if err != nil {
			return err
		}
		for i, stmt := range stmts {
			if err := s.CH.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("ch migrate #%d: %w", i+1, err)
			}
		}
		s.Log.Info().Int("statements", len(stmts)).Msg("clickhouse schema applied")
	}
	return nil
}
