package domain

import (
	"context"
	"time"
)

// CheckInMethod is how an attendee checked in.
type CheckInMethod string

// Check-in methods.
const (
	CheckInMethodQRCode    CheckInMethod = "qr_code"
	CheckInMethodManual    CheckInMethod = "manual"
	CheckInMethodMobileApp CheckInMethod = "mobile_app"
)

// Valid reports whether m is a known check-in method.
func (m CheckInMethod) Valid() bool {
	switch m {
	case CheckInMethodQRCode, CheckInMethodManual, CheckInMethodMobileApp:
		return true
	}
	return false
}

// Attendance records a check-in (and optional check-out) against an active
// registration. At most one attendance record exists per (student, event)
// pair; records are never deleted.
// swagger:model Attendance
type Attendance struct {
	ID              string        `json:"id"`
	Code            string        `json:"code"`
	StudentID       string        `json:"student_id"`
	EventID         string        `json:"event_id"`
	RegistrationID  string        `json:"registration_id"`
	CheckInTime     time.Time     `json:"check_in_time"`
	CheckInMethod   CheckInMethod `json:"check_in_method"`
	CheckInLocation *string       `json:"check_in_location,omitempty"`
	CheckOutTime    *time.Time    `json:"check_out_time,omitempty"`
	DurationMinutes *int          `json:"duration_minutes,omitempty"`
	Verified        bool          `json:"verified"`
	VerifiedBy      *string       `json:"verified_by,omitempty"`
	VerifiedAt      *time.Time    `json:"verified_at,omitempty"`
	Notes           *string       `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// AttendanceRepository defines storage for attendance records. CheckIn is a
// single serialized unit: it locks the event row, resolves the active
// registration for the pair, rejects duplicates, inserts, and refreshes the
// event's total_attendance counter before committing.
type AttendanceRepository interface {
	// CheckIn persists att with a derived code, filling RegistrationID from
	// the active registration. Returns ErrNotFound when the event is missing,
	// ErrNotRegistered when no active registration exists for the pair,
	// ErrAlreadyCheckedIn when an attendance record already exists, and
	// ErrConcurrencyConflict when a concurrent writer won the race.
	CheckIn(ctx context.Context, att *Attendance) error

	GetByID(ctx context.Context, id string) (*Attendance, error)
	GetByStudentAndEvent(ctx context.Context, studentID, eventID string) (*Attendance, error)
	ListByEventID(ctx context.Context, eventID string, p PaginationParams) ([]*Attendance, int, error)

	// SetCheckOut records the check-out time and derived duration. Returns
	// ErrAlreadyCheckedOut when the record already has a check-out time.
	SetCheckOut(ctx context.Context, id string, at time.Time, durationMinutes int) (*Attendance, error)

	// SetVerified marks the record verified. Returns ErrInvalidState when the
	// record is already verified.
	SetVerified(ctx context.Context, id, verifierID string, at time.Time) (*Attendance, error)
}

// AttendanceService owns the check-in/check-out lifecycle exposed to the API layer.
type AttendanceService interface {
	CheckIn(ctx context.Context, eventID, studentID string, method CheckInMethod, location *string) (*Attendance, error)
	CheckOut(ctx context.Context, attendanceID string) (*Attendance, error)
	Verify(ctx context.Context, attendanceID, verifierID string) (*Attendance, error)
	ListByEvent(ctx context.Context, eventID string, p PaginationParams) ([]*Attendance, int, error)
}
