package postgres

import (
	"errors"

	"github.com/lib/pq"

	"campusevents/internal/domain"
)

// Postgres error codes recognized by all repositories.
const (
	pqUniqueViolation      = "23505"
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

// translateConflict maps postgres race signals to domain errors: a unique
// violation means a concurrent writer inserted the conflicting row after our
// in-transaction check passed, a serialization failure or deadlock means the
// database aborted one side. Both are retryable for the caller. Other errors
// pass through unchanged.
func translateConflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation, pqSerializationFailure, pqDeadlockDetected:
			return domain.ErrConcurrencyConflict
		}
	}
	return err
}

// isUniqueViolation reports whether err is a unique-constraint violation on
// the named constraint. An empty constraint matches any unique violation.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != pqUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
