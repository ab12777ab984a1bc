package domain

import (
	"context"
	"time"
)

// Feedback attaches a rating to an event once the student's attendance is
// recorded. One feedback per attendance record.
// swagger:model Feedback
type Feedback struct {
	ID                 string    `json:"id"`
	Code               string    `json:"code"`
	StudentID          string    `json:"student_id"`
	EventID            string    `json:"event_id"`
	AttendanceID       string    `json:"attendance_id"`
	OverallRating      int       `json:"overall_rating"`
	ContentRating      *int      `json:"content_rating,omitempty"`
	OrganizationRating *int      `json:"organization_rating,omitempty"`
	VenueRating        *int      `json:"venue_rating,omitempty"`
	Comments           *string   `json:"comments,omitempty"`
	WouldRecommend     bool      `json:"would_recommend"`
	Anonymous          bool      `json:"anonymous"`
	SubmittedAt        time.Time `json:"submitted_at"`
}

// FeedbackSummary is the aggregate read view for an event's feedback.
type FeedbackSummary struct {
	EventID       string  `json:"event_id"`
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
}

// FeedbackRepository defines storage for feedback records.
type FeedbackRepository interface {
	// Create persists f with a derived code. Returns ErrInvalidState when
	// feedback already exists for the attendance record.
	Create(ctx context.Context, f *Feedback) error
	ListByEventID(ctx context.Context, eventID string, p PaginationParams) ([]*Feedback, int, error)
	Summary(ctx context.Context, eventID string) (*FeedbackSummary, error)
}

// FeedbackService is the interface boundary for feedback intake.
type FeedbackService interface {
	Create(ctx context.Context, eventID, studentID string, f *Feedback) (*Feedback, error)
	ListByEvent(ctx context.Context, eventID string, p PaginationParams) ([]*Feedback, int, *FeedbackSummary, error)
}
