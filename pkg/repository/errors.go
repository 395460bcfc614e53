package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// MapError translates driver errors into domain errors: sql.ErrNoRows becomes
// notFoundErr and a unique violation becomes duplicateErr, annotated with the
// violated constraint. Anything else is returned as is.
func MapError(err error, notFoundErr, duplicateErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if pgErr.ConstraintName == "" {
			return duplicateErr
		}
		return fmt.Errorf("%w: %s", duplicateErr, pgErr.ConstraintName)
	}

	return err
}
