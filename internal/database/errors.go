package database

import (
	"context"
	"database/sql/driver"
	"log"

	"github.com/chybatronik/goUserDirectory/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapStoreErrorSecure maps store-level errors to secure user-facing
// errors. Internal detail (query text, constraint names, driver messages)
// is logged but never crosses the HTTP boundary.
func MapStoreErrorSecure(err error) error {
	if err == nil {
		return nil
	}

	if pgErr, ok := err.(*pgconn.PgError); ok {
		log.Printf("Store error - Code: %s, Table: %s, Constraint: %s, Message: %s",
			pgErr.Code, pgErr.TableName, pgErr.ConstraintName, pgErr.Message)

		switch pgErr.Code {
		case "23505", "23503", "23502", "23514": // unique, foreign key, not null, check constraints
			return errors.NewValidationError(errors.ErrCodeValidationFailed, "Request failed validation")
		case "08001", "08003", "08004", "08006", "08007", "08P01": // connection exceptions
			return connectionUnavailableError()
		default:
			return errors.NewStoreError("An internal error occurred.")
		}
	}

	if isConnectionError(err) {
		log.Printf("Store connection error: %v", err)
		return connectionUnavailableError()
	}

	log.Printf("Store error: %v", err)
	return errors.NewStoreError("An internal error occurred.")
}

func connectionUnavailableError() error {
	return &errors.DirectoryError{
		Code:       errors.ErrCodeConnectionFailed,
		Message:    "Service temporarily unavailable",
		HTTPStatus: 503,
	}
}

// isConnectionError checks if error is a connection-related error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if err == driver.ErrBadConn {
		return true
	}

	if err == context.DeadlineExceeded || err == context.Canceled {
		return true
	}

	return false
}
