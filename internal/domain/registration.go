package domain

import (
	"context"
	"time"
)

// RegistrationStatus is the state of a registration.
type RegistrationStatus string

// Registration states. A registration transitions registered→cancelled or
// waitlisted→{registered, cancelled}; cancelled is terminal. Rows are never
// deleted; cancellation preserves audit history.
const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusWaitlisted RegistrationStatus = "waitlisted"
	RegistrationStatusCancelled  RegistrationStatus = "cancelled"
)

// Valid reports whether s is a known registration status.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationStatusRegistered, RegistrationStatusWaitlisted, RegistrationStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus is the payment state recorded on a registration.
type PaymentStatus string

// Payment states.
const (
	PaymentStatusPending     PaymentStatus = "pending"
	PaymentStatusPaid        PaymentStatus = "paid"
	PaymentStatusRefunded    PaymentStatus = "refunded"
	PaymentStatusNotRequired PaymentStatus = "not_required"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusRefunded, PaymentStatusNotRequired:
		return true
	}
	return false
}

// Registration represents a student's registration for an event. CollegeID is
// the student's college at registration time and never changes afterwards.
// At most one non-cancelled registration exists per (student, event) pair.
// swagger:model Registration
type Registration struct {
	ID                  string             `json:"id"`
	Code                string             `json:"code"`
	StudentID           string             `json:"student_id"`
	EventID             string             `json:"event_id"`
	CollegeID           string             `json:"college_id"`
	Status              RegistrationStatus `json:"status"`
	RegisteredAt        time.Time          `json:"registered_at"`
	PaymentStatus       PaymentStatus      `json:"payment_status"`
	PaymentAmount       float64            `json:"payment_amount"`
	PaymentDate         *time.Time         `json:"payment_date,omitempty"`
	PaymentRef          *string            `json:"payment_ref,omitempty"`
	SpecialRequirements *string            `json:"special_requirements,omitempty"`
	CancelledAt         *time.Time         `json:"cancelled_at,omitempty"`
	CancellationReason  *string            `json:"cancellation_reason,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// CancellationResult bundles the cancelled registration with the waitlisted
// registration promoted into the freed slot, if any.
type CancellationResult struct {
	Cancelled *Registration `json:"cancelled"`
	Promoted  *Registration `json:"promoted,omitempty"`
}

// RegistrationFilter narrows registration list queries. Nil fields are ignored.
type RegistrationFilter struct {
	EventID   *string
	StudentID *string
	Status    *RegistrationStatus
}

// RegistrationRepository defines storage for registrations. Register and
// Cancel are each a single serialized unit: they lock the event row, read
// live counts, decide, write, and refresh the event's total_registrations
// counter before committing.
type RegistrationRepository interface {
	// Register decides accept/waitlist/reject against the live accepted-count
	// and persists reg with the corresponding status and a derived code.
	// Returns ErrNotFound when the event is missing, ErrRegistrationClosed on
	// a rejected decision, ErrDuplicateRegistration when a non-cancelled
	// registration exists for the pair, and ErrConcurrencyConflict when a
	// concurrent writer won the race.
	Register(ctx context.Context, reg *Registration) error

	// Cancel transitions the registration to cancelled and, when the prior
	// status was registered, promotes the oldest waitlisted registration for
	// the same event inside the same transaction. The promoted registration
	// is nil when no waitlisted entry exists.
	Cancel(ctx context.Context, registrationID string, at time.Time, reason *string) (*CancellationResult, error)

	GetByID(ctx context.Context, id string) (*Registration, error)
	List(ctx context.Context, filter RegistrationFilter, p PaginationParams) ([]*Registration, int, error)

	// UpdatePayment records a payment state change on a non-cancelled
	// registration.
	UpdatePayment(ctx context.Context, id string, status PaymentStatus, amount float64, ref *string, paidAt *time.Time) (*Registration, error)
}

// RegistrationService owns the registration lifecycle exposed to the API layer.
type RegistrationService interface {
	Register(ctx context.Context, eventID, studentID string, specialRequirements *string) (*Registration, error)
	Cancel(ctx context.Context, registrationID, actorID string, actorRole Role, reason *string) (*CancellationResult, error)
	List(ctx context.Context, filter RegistrationFilter, p PaginationParams) ([]*Registration, int, error)
	RecordPayment(ctx context.Context, registrationID string, status PaymentStatus, amount float64, ref *string) (*Registration, error)
}
