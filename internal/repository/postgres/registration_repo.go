package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"campusevents/internal/domain"
)

// Constraint names from migrations/001_init.sql. The partial unique index on
// (student_id, event_id) for non-cancelled rows backs the one-active-
// registration-per-pair invariant when two requests race past the
// in-transaction duplicate check.
const (
	constraintActivePair = "registrations_active_pair_key"
)

type registrationRepository struct {
	DB *sql.DB
}

// NewRegistrationRepository creates a RegistrationRepository backed by postgres.
func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

const registrationColumns = `id, code, student_id, event_id, college_id, status, registered_at,
		payment_status, payment_amount, payment_date, payment_ref,
		special_requirements, cancelled_at, cancellation_reason, created_at, updated_at`

func scanRegistration(row interface{ Scan(...any) error }) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var paymentDate, cancelledAt sql.NullTime
	var paymentRef, specialReq, cancelReason sql.NullString
	err := row.Scan(
		&reg.ID, &reg.Code, &reg.StudentID, &reg.EventID, &reg.CollegeID,
		&reg.Status, &reg.RegisteredAt,
		&reg.PaymentStatus, &reg.PaymentAmount, &paymentDate, &paymentRef,
		&specialReq, &cancelledAt, &cancelReason, &reg.CreatedAt, &reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if paymentDate.Valid {
		reg.PaymentDate = &paymentDate.Time
	}
	if paymentRef.Valid {
		reg.PaymentRef = &paymentRef.String
	}
	if specialReq.Valid {
		reg.SpecialRequirements = &specialReq.String
	}
	if cancelledAt.Valid {
		reg.CancelledAt = &cancelledAt.Time
	}
	if cancelReason.Valid {
		reg.CancellationReason = &cancelReason.String
	}
	return reg, nil
}

// lockEvent acquires a row-level exclusive lock on the event and returns the
// fields the capacity decision needs. Every writer that touches an event's
// registrations or attendance goes through this lock, serializing the
// read-count-decide-write sequence per event.
func lockEvent(ctx context.Context, tx *sql.Tx, eventID string) (*domain.Event, error) {
	query := `
		SELECT id, code, name, capacity, registration_deadline, registration_open, status
		FROM events
		WHERE id = $1
		FOR UPDATE
	`
	e := &domain.Event{}
	err := tx.QueryRowContext(ctx, query, eventID).Scan(
		&e.ID, &e.Code, &e.Name, &e.Capacity,
		&e.RegistrationDeadline, &e.RegistrationOpen, &e.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}
	return e, nil
}

// refreshRegistrationCount recomputes the event's total_registrations from
// live rows. The stored column is a cache; registrations in status
// "registered" are the source of truth.
func refreshRegistrationCount(ctx context.Context, tx *sql.Tx, eventID string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE events
		SET total_registrations = (
			SELECT COUNT(*) FROM registrations
			WHERE event_id = $1 AND status = 'registered'
		), updated_at = NOW()
		WHERE id = $1
	`, eventID)
	return err
}

func (r *registrationRepository) Register(ctx context.Context, reg *domain.Registration) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	event, err := lockEvent(ctx, tx, reg.EventID)
	if err != nil {
		return err
	}

	var active int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM registrations
		WHERE event_id = $1 AND student_id = $2 AND status <> 'cancelled'
	`, reg.EventID, reg.StudentID).Scan(&active)
	if err != nil {
		return fmt.Errorf("check duplicate registration: %w", err)
	}
	if active > 0 {
		err = domain.ErrDuplicateRegistration
		return err
	}

	var acceptedCount int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM registrations
		WHERE event_id = $1 AND status = 'registered'
	`, reg.EventID).Scan(&acceptedCount)
	if err != nil {
		return fmt.Errorf("count accepted registrations: %w", err)
	}

	decision := domain.DecideSlot(event, acceptedCount, reg.RegisteredAt)
	if decision == domain.SlotRejected {
		err = domain.ErrRegistrationClosed
		return err
	}
	reg.Status = domain.RegistrationStatusRegistered
	if decision == domain.SlotWaitlisted {
		reg.Status = domain.RegistrationStatusWaitlisted
	}

	var studentCode string
	err = tx.QueryRowContext(ctx, `SELECT code FROM users WHERE id = $1`, reg.StudentID).Scan(&studentCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrNotFound
			return err
		}
		return fmt.Errorf("resolve student code: %w", err)
	}

	var seq int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM registrations WHERE event_id = $1
	`, reg.EventID).Scan(&seq)
	if err != nil {
		return fmt.Errorf("count registrations for code: %w", err)
	}
	reg.Code = domain.FormatRegistrationCode(seq+1, event.Code, studentCode)

	err = tx.QueryRowContext(ctx, `
		INSERT INTO registrations (code, student_id, event_id, college_id, status, registered_at,
			payment_status, payment_amount, special_requirements, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, reg.Code, reg.StudentID, reg.EventID, reg.CollegeID, reg.Status, reg.RegisteredAt,
		reg.PaymentStatus, reg.PaymentAmount, reg.SpecialRequirements, reg.CreatedAt, reg.UpdatedAt,
	).Scan(&reg.ID)
	if err != nil {
		if isUniqueViolation(err, constraintActivePair) {
			err = domain.ErrDuplicateRegistration
			return err
		}
		err = translateConflict(err)
		return err
	}

	if err = refreshRegistrationCount(ctx, tx, reg.EventID); err != nil {
		return fmt.Errorf("refresh registration count: %w", err)
	}

	if err = tx.Commit(); err != nil {
		err = translateConflict(err)
		return fmt.Errorf("commit registration: %w", err)
	}
	return nil
}

func (r *registrationRepository) Cancel(ctx context.Context, registrationID string, at time.Time, reason *string) (*domain.CancellationResult, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Resolve the event first so the event lock is taken in the same order
	// as Register; then re-read the registration under that lock.
	var eventID string
	err = tx.QueryRowContext(ctx, `SELECT event_id FROM registrations WHERE id = $1`, registrationID).Scan(&eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrNotFound
			return nil, err
		}
		return nil, fmt.Errorf("resolve registration event: %w", err)
	}
	if _, err = lockEvent(ctx, tx, eventID); err != nil {
		return nil, err
	}

	var prior domain.RegistrationStatus
	err = tx.QueryRowContext(ctx, `
		SELECT status FROM registrations WHERE id = $1 FOR UPDATE
	`, registrationID).Scan(&prior)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrNotFound
			return nil, err
		}
		return nil, fmt.Errorf("lock registration row: %w", err)
	}
	if prior == domain.RegistrationStatusCancelled {
		err = domain.ErrInvalidState
		return nil, err
	}

	result := &domain.CancellationResult{}
	row := tx.QueryRowContext(ctx, `
		UPDATE registrations
		SET status = 'cancelled', cancelled_at = $2, cancellation_reason = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+registrationColumns, registrationID, at, reason)
	result.Cancelled, err = scanRegistration(row)
	if err != nil {
		return nil, fmt.Errorf("cancel registration: %w", err)
	}

	// Promote the oldest waitlisted registration into the freed slot.
	// Waitlisted cancellations free no slot, so nothing to promote.
	if prior == domain.RegistrationStatusRegistered {
		row = tx.QueryRowContext(ctx, `
			UPDATE registrations
			SET status = 'registered', updated_at = NOW()
			WHERE id = (
				SELECT id FROM registrations
				WHERE event_id = $1 AND status = 'waitlisted'
				ORDER BY registered_at ASC
				LIMIT 1
			)
			RETURNING `+registrationColumns, eventID)
		result.Promoted, err = scanRegistration(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				result.Promoted = nil
				err = nil
			} else {
				return nil, fmt.Errorf("promote waitlisted registration: %w", err)
			}
		}
	}

	if err = refreshRegistrationCount(ctx, tx, eventID); err != nil {
		return nil, fmt.Errorf("refresh registration count: %w", err)
	}

	if err = tx.Commit(); err != nil {
		err = translateConflict(err)
		return nil, fmt.Errorf("commit cancellation: %w", err)
	}
	return result, nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+registrationColumns+`
		FROM registrations
		WHERE id = $1
	`, id)
	reg, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) List(ctx context.Context, filter domain.RegistrationFilter, p domain.PaginationParams) ([]*domain.Registration, int, error) {
	where := []string{"1=1"}
	args := []any{}
	n := 1
	if filter.EventID != nil {
		where = append(where, fmt.Sprintf("event_id = $%d", n))
		args = append(args, *filter.EventID)
		n++
	}
	if filter.StudentID != nil {
		where = append(where, fmt.Sprintf("student_id = $%d", n))
		args = append(args, *filter.StudentID)
		n++
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", n))
		args = append(args, *filter.Status)
		n++
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM registrations WHERE "+cond, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count registrations: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM registrations
		WHERE %s
		ORDER BY registered_at DESC
		LIMIT $%d OFFSET $%d
	`, registrationColumns, cond, n, n+1)
	args = append(args, p.PageSize, p.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, 0, err
		}
		regs = append(regs, reg)
	}
	return regs, total, rows.Err()
}

func (r *registrationRepository) UpdatePayment(ctx context.Context, id string, status domain.PaymentStatus, amount float64, ref *string, paidAt *time.Time) (*domain.Registration, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE registrations
		SET payment_status = $2, payment_amount = $3, payment_ref = $4, payment_date = $5, updated_at = NOW()
		WHERE id = $1 AND status <> 'cancelled'
		RETURNING `+registrationColumns, id, status, amount, ref, paidAt)
	reg, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Either the row is missing or it is cancelled; disambiguate for
			// the caller.
			if _, getErr := r.GetByID(ctx, id); getErr == nil {
				return nil, domain.ErrInvalidState
			}
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}
