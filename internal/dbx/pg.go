package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the Postgres class 23 code for a unique-constraint
// violation.
const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err came from a violated unique
// constraint, so repositories can surface it as a duplicate-key condition
// instead of a generic failure.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
