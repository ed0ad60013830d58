// Package store provides database access methods for all Inkwell entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
//
// Conventions: queries that look up a single row return (nil, nil) when no
// row exists; unique-constraint violations surface as ErrDuplicate so
// services can implement idempotent creation on top of the database's
// uniqueness guarantees.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned when an insert violates a unique constraint.
// Under concurrent requests the constraint is the only duplicate-row
// safeguard; callers treat this error as "the row already exists".
var ErrDuplicate = errors.New("duplicate row")

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
