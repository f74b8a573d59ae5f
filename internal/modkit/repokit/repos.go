// Package repokit provides common types and helpers for repository implementations
package repokit

import (
	"context"
	"strings"
	"time"

	perr "deploytrack/internal/platform/errors"
	"deploytrack/internal/platform/logger"
	"deploytrack/internal/platform/store"
)

// Queryer is the minimal read and write surface for SQL repos
type Queryer = store.RowQuerier

// TxRunner can execute a function inside a transaction
type TxRunner = store.TxRunner

type (
	// Rows are the result set of a query
	Rows = store.Rows

	// Row is a single row result from a query
	Row = store.Row

	// CommandTag is the result of a command that modifies data
	CommandTag = store.CommandTag

	// Timestamp scans driver time encodings
	Timestamp = store.Timestamp
)

// TxAttempts bounds how often WithTx reruns a transaction that failed on contention
var TxAttempts = 3

// WithTx runs fn inside a transaction. A serialization failure, deadlock or
// busy sqlite database reruns the whole transaction, so fn must not keep
// state across attempts
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	var err error
	for attempt := 1; ; attempt++ {
		err = tx.Tx(ctx, fn)
		if err == nil || attempt >= TxAttempts || !perr.Retryable(err) {
			return err
		}
		logger.C(ctx).Warn().Err(err).Int("attempt", attempt).Msg("transaction contention, retrying")
		select {
		case <-ctx.Done():
			return err
		case <-time.After(time.Duration(attempt*25) * time.Millisecond):
		}
	}
}

// Contains builds a lower-cased LIKE pattern that matches s anywhere, with
// the LIKE wildcards in s escaped. Pair it with `lower(col) LIKE $n ESCAPE '\'`
func Contains(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// Paging is a page/size pair as the list endpoints take it
type Paging struct {
	Page int
	Size int
}

// Clamp fixes a page below 1 and a size outside allowed, falling back to def
func (p Paging) Clamp(def int, allowed ...int) Paging {
	if p.Page < 1 {
		p.Page = 1
	}
	ok := len(allowed) == 0 && p.Size > 0
	for _, a := range allowed {
		if p.Size == a {
			ok = true
			break
		}
	}
	if !ok {
		p.Size = def
	}
	return p
}

// Offset is the row offset for LIMIT/OFFSET
func (p Paging) Offset() int { return (p.Page - 1) * p.Size }
