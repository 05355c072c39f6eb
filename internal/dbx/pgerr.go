package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the repositories react to.
const (
	pgUniqueViolation     = "23505"
	pgInvalidTextFormat   = "22P02"
	pgForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// IsInvalidTextRepresentation reports whether a parameter could not be cast,
// e.g. a malformed UUID.
func IsInvalidTextRepresentation(err error) bool {
	return pgCode(err) == pgInvalidTextFormat
}

// IsForeignKeyViolation reports whether a referenced row is missing.
func IsForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKeyViolation
}
