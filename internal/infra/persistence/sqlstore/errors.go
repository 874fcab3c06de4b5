package sqlstore

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"example.com/shopfront/internal/apperr"
)

const (
	mysqlDuplicateEntry = 1062
	pgUniqueViolation   = "23505"
)

func isDuplicate(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

// mapError turns unique violations into conflict and wraps anything else
// as an infrastructure failure.
func mapError(err error, conflict error) error {
	switch {
	case err == nil:
		return nil
	case conflict != nil && isDuplicate(err):
		return conflict
	default:
		return apperr.Infra(err)
	}
}

func newUUID() string {
	return uuid.NewString()
}
