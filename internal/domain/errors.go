package domain

import "errors"

// Sentinel errors shared across services and repositories. Controllers map
// these to HTTP status codes; services and repositories wrap them with
// context via fmt.Errorf("...: %w", err).
var (
	// ErrNotFound is returned when a referenced entity (event, student,
	// registration, attendance) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the actor is not allowed to perform the
	// operation (e.g. cancelling someone else's registration).
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized is returned on failed authentication.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDuplicateEmail is returned when signing up with an email that is
	// already in use.
	ErrDuplicateEmail = errors.New("email already in use")
)

// Registration and attendance lifecycle errors.
var (
	// ErrDuplicateRegistration is returned when a non-cancelled registration
	// already exists for the (student, event) pair.
	ErrDuplicateRegistration = errors.New("student already registered for this event")

	// ErrRegistrationClosed is returned when the registration window is
	// closed: deadline passed, registration flag off, or event not active.
	ErrRegistrationClosed = errors.New("registration is closed for this event")

	// ErrNotRegistered is returned on check-in when no active registration
	// exists for the (student, event) pair.
	ErrNotRegistered = errors.New("student is not registered for this event")

	// ErrAlreadyCheckedIn is returned when an attendance record already
	// exists for the (student, event) pair.
	ErrAlreadyCheckedIn = errors.New("student already checked in for this event")

	// ErrAlreadyCheckedOut is returned when the attendance record already has
	// a check-out time.
	ErrAlreadyCheckedOut = errors.New("attendance already checked out")

	// ErrInvalidState is returned when an operation is attempted on a
	// terminal state, e.g. cancelling an already-cancelled registration.
	ErrInvalidState = errors.New("operation not valid in the current state")

	// ErrConcurrencyConflict is returned when the storage layer detected a
	// race (unique violation or serialization failure) and aborted one side.
	// The caller may retry the operation.
	ErrConcurrencyConflict = errors.New("concurrent update conflict, retry the operation")
)
