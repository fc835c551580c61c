// Package pgerr translates gorm and Postgres driver errors into the errs taxonomy.
// Repositories call it on every store error so nothing driver-specific reaches the core.
package pgerr

import (
	"errors"

	"parceltrack/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// UniqueFields maps a unique constraint (or unique index) name to the client-facing
// field it protects.
type UniqueFields map[string]string

// Translate converts err into an errs error:
//   - gorm.ErrRecordNotFound becomes an ObjectNotFoundError for object/id
//   - a unique violation becomes a ConflictError naming the field behind the constraint
//   - anything else becomes an InternalError wrapping the cause
func Translate(operation string, err error, object string, id any, fields UniqueFields) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(object, id)
	}

	if field, ok := UniqueViolation(err, fields); ok {
		return errs.NewConflictErrorWithCause(field, err)
	}

	return errs.NewInternalError(operation, err)
}

// UniqueViolation reports whether err is a Postgres unique violation and, if so, the
// field it names. Unknown constraints are reported under their own name.
func UniqueViolation(err error, fields UniqueFields) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return "", false
	}
	if field, ok := fields[pgErr.ConstraintName]; ok {
		return field, true
	}
	return pgErr.ConstraintName, true
}
