package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation. The schema carries unique indexes for access codes, customer
// links and order ids; repositories turn 23505 into the matching sentinel
// instead of racing a read-then-insert check.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
