package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campusevents/internal/domain"
)

// Unique constraint on (student_id, event_id) from migrations/001_init.sql.
const constraintAttendancePair = "attendance_pair_key"

type attendanceRepository struct {
	DB *sql.DB
}

// NewAttendanceRepository creates an AttendanceRepository backed by postgres.
func NewAttendanceRepository(db *sql.DB) domain.AttendanceRepository {
	return &attendanceRepository{
		DB: db,
	}
}

const attendanceColumns = `id, code, student_id, event_id, registration_id,
		check_in_time, check_in_method, check_in_location,
		check_out_time, duration_minutes,
		verified, verified_by, verified_at, notes, created_at, updated_at`

func scanAttendance(row interface{ Scan(...any) error }) (*domain.Attendance, error) {
	att := &domain.Attendance{}
	var location, verifiedBy, notes sql.NullString
	var checkOut, verifiedAt sql.NullTime
	var duration sql.NullInt64
	err := row.Scan(
		&att.ID, &att.Code, &att.StudentID, &att.EventID, &att.RegistrationID,
		&att.CheckInTime, &att.CheckInMethod, &location,
		&checkOut, &duration,
		&att.Verified, &verifiedBy, &verifiedAt, &notes, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if location.Valid {
		att.CheckInLocation = &location.String
	}
	if checkOut.Valid {
		att.CheckOutTime = &checkOut.Time
	}
	if duration.Valid {
		minutes := int(duration.Int64)
		att.DurationMinutes = &minutes
	}
	if verifiedBy.Valid {
		att.VerifiedBy = &verifiedBy.String
	}
	if verifiedAt.Valid {
		att.VerifiedAt = &verifiedAt.Time
	}
	if notes.Valid {
		att.Notes = &notes.String
	}
	return att, nil
}

func (r *attendanceRepository) CheckIn(ctx context.Context, att *domain.Attendance) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Same event lock as the registration writers, so a check-in never races
	// a cancellation of the registration it fulfills.
	event, err := lockEvent(ctx, tx, att.EventID)
	if err != nil {
		return err
	}

	err = tx.QueryRowContext(ctx, `
		SELECT id FROM registrations
		WHERE event_id = $1 AND student_id = $2 AND status = 'registered'
	`, att.EventID, att.StudentID).Scan(&att.RegistrationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrNotRegistered
			return err
		}
		return fmt.Errorf("resolve active registration: %w", err)
	}

	var existing int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM attendance
		WHERE event_id = $1 AND student_id = $2
	`, att.EventID, att.StudentID).Scan(&existing)
	if err != nil {
		return fmt.Errorf("check existing attendance: %w", err)
	}
	if existing > 0 {
		err = domain.ErrAlreadyCheckedIn
		return err
	}

	var studentCode string
	err = tx.QueryRowContext(ctx, `SELECT code FROM users WHERE id = $1`, att.StudentID).Scan(&studentCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrNotFound
			return err
		}
		return fmt.Errorf("resolve student code: %w", err)
	}

	var seq int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM attendance WHERE event_id = $1
	`, att.EventID).Scan(&seq)
	if err != nil {
		return fmt.Errorf("count attendance for code: %w", err)
	}
	att.Code = domain.FormatAttendanceCode(seq+1, event.Code, studentCode)

	err = tx.QueryRowContext(ctx, `
		INSERT INTO attendance (code, student_id, event_id, registration_id,
			check_in_time, check_in_method, check_in_location, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, att.Code, att.StudentID, att.EventID, att.RegistrationID,
		att.CheckInTime, att.CheckInMethod, att.CheckInLocation, att.Notes,
		att.CreatedAt, att.UpdatedAt,
	).Scan(&att.ID)
	if err != nil {
		if isUniqueViolation(err, constraintAttendancePair) {
			err = domain.ErrAlreadyCheckedIn
			return err
		}
		err = translateConflict(err)
		return err
	}

	// Attendance rows are insert-once per pair, so recomputing from live rows
	// keeps recordAttendance idempotent: a second check-in never reaches this
	// point.
	_, err = tx.ExecContext(ctx, `
		UPDATE events
		SET total_attendance = (
			SELECT COUNT(*) FROM attendance WHERE event_id = $1
		), updated_at = NOW()
		WHERE id = $1
	`, att.EventID)
	if err != nil {
		return fmt.Errorf("refresh attendance count: %w", err)
	}

	if err = tx.Commit(); err != nil {
		err = translateConflict(err)
		return fmt.Errorf("commit check-in: %w", err)
	}
	return nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (*domain.Attendance, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance
		WHERE id = $1
	`, id)
	att, err := scanAttendance(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return att, nil
}

func (r *attendanceRepository) GetByStudentAndEvent(ctx context.Context, studentID, eventID string) (*domain.Attendance, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance
		WHERE student_id = $1 AND event_id = $2
	`, studentID, eventID)
	att, err := scanAttendance(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return att, nil
}

func (r *attendanceRepository) ListByEventID(ctx context.Context, eventID string, p domain.PaginationParams) ([]*domain.Attendance, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attendance WHERE event_id = $1`, eventID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count attendance: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+attendanceColumns+`
		FROM attendance
		WHERE event_id = $1
		ORDER BY check_in_time ASC
		LIMIT $2 OFFSET $3
	`, eventID, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records := make([]*domain.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, att)
	}
	return records, total, rows.Err()
}

func (r *attendanceRepository) SetCheckOut(ctx context.Context, id string, at time.Time, durationMinutes int) (*domain.Attendance, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE attendance
		SET check_out_time = $2, duration_minutes = $3, updated_at = NOW()
		WHERE id = $1 AND check_out_time IS NULL
		RETURNING `+attendanceColumns, id, at, durationMinutes)
	att, err := scanAttendance(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr == nil {
				return nil, domain.ErrAlreadyCheckedOut
			}
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return att, nil
}

func (r *attendanceRepository) SetVerified(ctx context.Context, id, verifierID string, at time.Time) (*domain.Attendance, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE attendance
		SET verified = TRUE, verified_by = $2, verified_at = $3, updated_at = NOW()
		WHERE id = $1 AND verified = FALSE
		RETURNING `+attendanceColumns, id, verifierID, at)
	att, err := scanAttendance(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if _, getErr := r.GetByID(ctx, id); getErr == nil {
				return nil, domain.ErrInvalidState
			}
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return att, nil
}
