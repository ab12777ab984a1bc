package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"campusevents/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository creates an EventRepository backed by postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `id, code, name, description, type, venue, capacity,
		starts_at, registration_deadline, registration_fee, registration_open,
		status, college_id, created_by, total_registrations, total_attendance,
		created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var description, venue sql.NullString
	err := row.Scan(
		&e.ID, &e.Code, &e.Name, &description, &e.Type, &venue, &e.Capacity,
		&e.StartsAt, &e.RegistrationDeadline, &e.RegistrationFee, &e.RegistrationOpen,
		&e.Status, &e.CollegeID, &e.CreatedBy, &e.TotalRegistrations, &e.TotalAttendance,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		e.Description = description.String
	}
	if venue.Valid {
		e.Venue = venue.String
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// The college row lock serializes event code assignment within a college.
	var collegeCode string
	err = tx.QueryRowContext(ctx, `
		SELECT code FROM colleges WHERE id = $1 FOR UPDATE
	`, e.CollegeID).Scan(&collegeCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = domain.ErrNotFound
			return err
		}
		return fmt.Errorf("lock college row: %w", err)
	}

	var seq int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM events WHERE college_id = $1
	`, e.CollegeID).Scan(&seq)
	if err != nil {
		return fmt.Errorf("count events for code: %w", err)
	}
	e.Code = domain.FormatEventCode(seq+1, collegeCode)

	err = tx.QueryRowContext(ctx, `
		INSERT INTO events (code, name, description, type, venue, capacity,
			starts_at, registration_deadline, registration_fee, registration_open,
			status, college_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`, e.Code, e.Name, e.Description, e.Type, e.Venue, e.Capacity,
		e.StartsAt, e.RegistrationDeadline, e.RegistrationFee, e.RegistrationOpen,
		e.Status, e.CollegeID, e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		err = translateConflict(err)
		return err
	}

	if err = tx.Commit(); err != nil {
		err = translateConflict(err)
		return fmt.Errorf("commit event: %w", err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE id = $1
	`, id)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetByCode(ctx context.Context, code string) (*domain.Event, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE code = $1
	`, code)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter, p domain.PaginationParams) ([]*domain.Event, int, error) {
	where := []string{"1=1"}
	args := []any{}
	n := 1
	if filter.CollegeID != nil {
		where = append(where, fmt.Sprintf("college_id = $%d", n))
		args = append(args, *filter.CollegeID)
		n++
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", n))
		args = append(args, *filter.Status)
		n++
	}
	if filter.Type != nil {
		where = append(where, fmt.Sprintf("type = $%d", n))
		args = append(args, *filter.Type)
		n++
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM events WHERE "+cond, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE %s
		ORDER BY starts_at ASC
		LIMIT $%d OFFSET $%d
	`, eventColumns, cond, n, n+1)
	args = append(args, p.PageSize, p.Offset())

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) SetStatus(ctx context.Context, id string, status domain.EventStatus, registrationOpen bool) (*domain.Event, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE events
		SET status = $2, registration_open = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING `+eventColumns, id, status, registrationOpen)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}
