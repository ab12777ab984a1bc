package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"campusevents/internal/domain"
)

const constraintFeedbackAttendance = "feedback_attendance_id_key"

type feedbackRepository struct {
	DB *sql.DB
}

// NewFeedbackRepository creates a FeedbackRepository backed by postgres.
func NewFeedbackRepository(db *sql.DB) domain.FeedbackRepository {
	return &feedbackRepository{
		DB: db,
	}
}

const feedbackColumns = `id, code, student_id, event_id, attendance_id,
		overall_rating, content_rating, organization_rating, venue_rating,
		comments, would_recommend, anonymous, submitted_at`

func scanFeedback(row interface{ Scan(...any) error }) (*domain.Feedback, error) {
	f := &domain.Feedback{}
	var content, organization, venue sql.NullInt64
	var comments sql.NullString
	err := row.Scan(
		&f.ID, &f.Code, &f.StudentID, &f.EventID, &f.AttendanceID,
		&f.OverallRating, &content, &organization, &venue,
		&comments, &f.WouldRecommend, &f.Anonymous, &f.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	if content.Valid {
		v := int(content.Int64)
		f.ContentRating = &v
	}
	if organization.Valid {
		v := int(organization.Int64)
		f.OrganizationRating = &v
	}
	if venue.Valid {
		v := int(venue.Int64)
		f.VenueRating = &v
	}
	if comments.Valid {
		f.Comments = &comments.String
	}
	return f, nil
}

func (r *feedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	event, err := lockEvent(ctx, tx, f.EventID)
	if err != nil {
		return err
	}

	var seq int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM feedback WHERE event_id = $1
	`, f.EventID).Scan(&seq)
	if err != nil {
		return fmt.Errorf("count feedback for code: %w", err)
	}
	f.Code = domain.FormatFeedbackCode(seq+1, event.Code)

	err = tx.QueryRowContext(ctx, `
		INSERT INTO feedback (code, student_id, event_id, attendance_id,
			overall_rating, content_rating, organization_rating, venue_rating,
			comments, would_recommend, anonymous, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, f.Code, f.StudentID, f.EventID, f.AttendanceID,
		f.OverallRating, f.ContentRating, f.OrganizationRating, f.VenueRating,
		f.Comments, f.WouldRecommend, f.Anonymous, f.SubmittedAt,
	).Scan(&f.ID)
	if err != nil {
		if isUniqueViolation(err, constraintFeedbackAttendance) {
			err = domain.ErrInvalidState
			return err
		}
		err = translateConflict(err)
		return err
	}

	if err = tx.Commit(); err != nil {
		err = translateConflict(err)
		return fmt.Errorf("commit feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepository) ListByEventID(ctx context.Context, eventID string, p domain.PaginationParams) ([]*domain.Feedback, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM feedback WHERE event_id = $1`, eventID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count feedback: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+feedbackColumns+`
		FROM feedback
		WHERE event_id = $1
		ORDER BY submitted_at DESC
		LIMIT $2 OFFSET $3
	`, eventID, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]*domain.Feedback, 0)
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, f)
	}
	return items, total, rows.Err()
}

func (r *feedbackRepository) Summary(ctx context.Context, eventID string) (*domain.FeedbackSummary, error) {
	s := &domain.FeedbackSummary{EventID: eventID}
	var avg sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), AVG(overall_rating)
		FROM feedback
		WHERE event_id = $1
	`, eventID).Scan(&s.Count, &avg)
	if err != nil {
		return nil, err
	}
	if avg.Valid {
		s.AverageRating = avg.Float64
	}
	return s, nil
}
