package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes for integrity constraint violations.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
)

// PersistenceError is a store-level failure. Constraint is true when the
// store rejected the write because of an integrity constraint (unknown
// employee id, duplicate code, bad enum value) rather than a fault.
type PersistenceError struct {
	Op             string
	Code           string
	ConstraintName string
	Constraint     bool
	Err            error
}

func (e *PersistenceError) Error() string {
	if e.ConstraintName != "" {
		return fmt.Sprintf("%s: constraint %s violated: %v", e.Op, e.ConstraintName, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Wrap classifies err as a PersistenceError. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	var existing *PersistenceError
	if errors.As(err, &existing) {
		return err
	}

	pe := &PersistenceError{Op: op, Err: err}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		pe.Code = pgErr.Code
		pe.ConstraintName = pgErr.ConstraintName
		switch pgErr.Code {
		case codeForeignKeyViolation, codeUniqueViolation, codeCheckViolation, codeNotNullViolation:
			pe.Constraint = true
		}
	}

	return pe
}

// IsConstraintViolation reports whether err carries a constraint violation.
func IsConstraintViolation(err error) bool {
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return pe.Constraint
	}
	return false
}

// IsUniqueViolation reports whether err was caused by the named unique constraint.
// An empty name matches any unique constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
