package pkg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// postgres error codes the training store maps to domain errors,
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgCodeForeignKeyViolation = "23503"
	pgCodeUniqueViolation     = "23505"
	pgCodeCheckViolation      = "23514"
)

// PgErrorCode returns the SQLSTATE code of a postgres error anywhere in the chain, or "".
func PgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolationError is true for a second active deload of a user (partial unique index).
func IsUniqueViolationError(err error) bool {
	return PgErrorCode(err) == pgCodeUniqueViolation
}

// IsForeignKeyViolationError is true for rows written for an unknown user.
func IsForeignKeyViolationError(err error) bool {
	return PgErrorCode(err) == pgCodeForeignKeyViolation
}

// IsCheckViolationError is true for values outside a column's CHECK constraint,
// like a deload modifier above 1.
func IsCheckViolationError(err error) bool {
	return PgErrorCode(err) == pgCodeCheckViolation
}
