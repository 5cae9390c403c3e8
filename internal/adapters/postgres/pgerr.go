package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	// UniqueViolationCode indicates a unique constraint violation.
	UniqueViolationCode = "23505"
	// ForeignKeyViolationCode indicates a foreign key violation.
	ForeignKeyViolationCode = "23503"
	// CheckViolationCode indicates a check constraint violation.
	CheckViolationCode = "23514"
)

func AsPgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsForeignKeyViolation reports whether err is a 23503 raised by the named constraint.
// An empty constraint matches any foreign key.
func IsForeignKeyViolation(err error, constraint string) bool {
	pe, ok := AsPgError(err)
	if !ok || pe.Code != ForeignKeyViolationCode {
		return false
	}
	return constraint == "" || pe.ConstraintName == constraint
}
