package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusevents/internal/domain"
)

type feedbackService struct {
	feedbackRepo   domain.FeedbackRepository
	attendanceRepo domain.AttendanceRepository
	eventRepo      domain.EventRepository
}

// NewFeedbackService creates a FeedbackService over the given repositories.
func NewFeedbackService(
	feedbackRepo domain.FeedbackRepository,
	attendanceRepo domain.AttendanceRepository,
	eventRepo domain.EventRepository,
) domain.FeedbackService {
	return &feedbackService{
		feedbackRepo:   feedbackRepo,
		attendanceRepo: attendanceRepo,
		eventRepo:      eventRepo,
	}
}

func (s *feedbackService) Create(ctx context.Context, eventID, studentID string, f *domain.Feedback) (*domain.Feedback, error) {
	if f.OverallRating < 1 || f.OverallRating > 5 {
		return nil, fmt.Errorf("%w: overall rating must be between 1 and 5", domain.ErrInvalidState)
	}

	// Feedback requires a recorded attendance for the pair.
	att, err := s.attendanceRepo.GetByStudentAndEvent(ctx, studentID, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotRegistered
		}
		return nil, fmt.Errorf("get attendance: %w", err)
	}

	f.StudentID = studentID
	f.EventID = eventID
	f.AttendanceID = att.ID
	f.SubmittedAt = time.Now()
	if err := s.feedbackRepo.Create(ctx, f); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidState),
			errors.Is(err, domain.ErrNotFound),
			errors.Is(err, domain.ErrConcurrencyConflict):
			return nil, err
		}
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return f, nil
}

func (s *feedbackService) ListByEvent(ctx context.Context, eventID string, p domain.PaginationParams) ([]*domain.Feedback, int, *domain.FeedbackSummary, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, nil, domain.ErrNotFound
		}
		return nil, 0, nil, fmt.Errorf("get event: %w", err)
	}
	items, total, err := s.feedbackRepo.ListByEventID(ctx, eventID, p)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("list feedback: %w", err)
	}
	summary, err := s.feedbackRepo.Summary(ctx, eventID)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("feedback summary: %w", err)
	}
	return items, total, summary, nil
}
