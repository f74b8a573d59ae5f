package errors

// Mapping of relational driver failures onto ErrorCode. The store runs on
// pgx for postgres and modernc for sqlite; both are handled here

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLSTATE classes the services care about
const (
	stateUniqueViolation     = "23505"
	stateForeignKeyViolation = "23503"
	stateNotNullViolation    = "23502"
	stateCheckViolation      = "23514"
	stateStringTooLong       = "22001"
	stateBadTextForType      = "22P02"
	stateSerialization       = "40001"
	stateDeadlock            = "40P01"
	stateLockNotAvailable    = "55P03"
	stateReadOnlyTx          = "25006"
	stateCannotConnectNow    = "57P03"
)

var pgStateCodes = map[string]ErrorCode{
	stateUniqueViolation:     ErrorCodeDuplicateKey,
	stateForeignKeyViolation: ErrorCodeInvalidArgument,
	stateNotNullViolation:    ErrorCodeValidation,
	stateCheckViolation:      ErrorCodeValidation,
	stateStringTooLong:       ErrorCodeInvalidArgument,
	stateBadTextForType:      ErrorCodeInvalidArgument,
	stateReadOnlyTx:          ErrorCodeUnavailable,
	stateCannotConnectNow:    ErrorCodeUnavailable,
}

// ExtractPgError finds a postgres server error in the chain
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	ok := stderrs.As(err, &pe)
	return pe, ok
}

// ExtractSQLiteError finds a modernc sqlite error in the chain
func ExtractSQLiteError(err error) (*sqlite.Error, bool) {
	var se *sqlite.Error
	ok := stderrs.As(err, &se)
	return se, ok
}

// DBErrorCode classifies a driver error. ok is false when err came from
// neither driver
func DBErrorCode(err error) (code ErrorCode, ok bool) {
	if pe, found := ExtractPgError(err); found {
		if c, mapped := pgStateCodes[pe.Code]; mapped {
			return c, true
		}
		return ErrorCodeDB, true
	}
	if se, found := ExtractSQLiteError(err); found {
		return sqliteCode(se.Code()), true
	}
	return ErrorCodeUnknown, false
}

func sqliteCode(extended int) ErrorCode {
	switch extended {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return ErrorCodeDuplicateKey
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ErrorCodeInvalidArgument
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL, sqlite3.SQLITE_CONSTRAINT_CHECK:
		return ErrorCodeValidation
	}
	switch extended & 0xff {
	case sqlite3.SQLITE_READONLY, sqlite3.SQLITE_CANTOPEN:
		return ErrorCodeUnavailable
	}
	return ErrorCodeDB
}

// FromDB wraps a driver error under msg with its mapped code. Errors that
// already carry a code (ErrNotFound from the store helpers) pass through.
// Postgres errors also get the offending column attached as the field
func FromDB(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	out := Wrap(err, code, msg)
	if f := pgField(err); f != "" {
		out = WithField(out, f)
	}
	return out
}

// pgField prefers the column name and falls back to the constraint suffix
// (components_component_id_key gives no field, uq_email gives email)
func pgField(err error) string {
	pe, ok := ExtractPgError(err)
	if !ok {
		return ""
	}
	if c := strings.TrimSpace(pe.ColumnName); c != "" {
		return c
	}
	c := strings.TrimSpace(pe.ConstraintName)
	if i := strings.LastIndexByte(c, '_'); i >= 0 {
		c = c[i+1:]
	}
	switch c {
	case "", "key", "pkey", "fkey", "check":
		return ""
	}
	return c
}

// retryText is what pgx surfaces for contention when no PgError is available
var retryText = []string{
	"commit unexpectedly resulted in rollback",
	"deadlock detected",
	"could not serialize access",
	"canceling statement due to lock timeout",
	"could not obtain lock on row",
}

// Retryable reports whether running the same transaction again may succeed:
// postgres serialization failures, deadlocks and lock timeouts, and sqlite
// busy or locked databases. Context cancellation is never retryable
func Retryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pe, ok := ExtractPgError(err); ok {
		switch pe.Code {
		case stateSerialization, stateDeadlock, stateLockNotAvailable:
			return true
		}
		return false
	}
	if se, ok := ExtractSQLiteError(err); ok {
		switch se.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return true
		}
		return false
	}
	s := strings.ToLower(Root(err).Error())
	for _, t := range retryText {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
