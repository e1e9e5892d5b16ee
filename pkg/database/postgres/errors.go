package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNilConfig config is nil
	ErrNilConfig = errors.New("postgres: config is nil")

	// ErrInvalidConfig required connection fields are missing
	ErrInvalidConfig = errors.New("postgres: invalid config")

	// ErrNoRows query returned no rows
	ErrNoRows = errors.New("postgres: no rows in result set")
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err was caused by a unique constraint.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
