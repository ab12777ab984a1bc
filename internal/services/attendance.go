package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campusevents/internal/domain"
)

type attendanceService struct {
	attendanceRepo domain.AttendanceRepository
	eventRepo      domain.EventRepository
	userRepo       domain.UserRepository
	logger         *slog.Logger
}

// NewAttendanceService creates an AttendanceService over the given repositories.
func NewAttendanceService(
	attendanceRepo domain.AttendanceRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	logger *slog.Logger,
) domain.AttendanceService {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

func (s *attendanceService) CheckIn(ctx context.Context, eventID, studentID string, method domain.CheckInMethod, location *string) (*domain.Attendance, error) {
	if !method.Valid() {
		method = domain.CheckInMethodMobileApp
	}

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if _, err := s.userRepo.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get student: %w", err)
	}

	now := time.Now()
	att := &domain.Attendance{
		StudentID:       studentID,
		EventID:         eventID,
		CheckInTime:     now,
		CheckInMethod:   method,
		CheckInLocation: location,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.attendanceRepo.CheckIn(ctx, att); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotRegistered),
			errors.Is(err, domain.ErrAlreadyCheckedIn),
			errors.Is(err, domain.ErrNotFound),
			errors.Is(err, domain.ErrConcurrencyConflict):
			return nil, err
		}
		return nil, fmt.Errorf("create attendance: %w", err)
	}

	s.logger.InfoContext(ctx, "attendee checked in",
		"attendance_code", att.Code,
		"event_id", eventID,
		"student_id", studentID,
		"method", method,
	)
	return att, nil
}

func (s *attendanceService) CheckOut(ctx context.Context, attendanceID string) (*domain.Attendance, error) {
	att, err := s.attendanceRepo.GetByID(ctx, attendanceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	if att.CheckOutTime != nil {
		return nil, domain.ErrAlreadyCheckedOut
	}

	now := time.Now()
	minutes := int(now.Sub(att.CheckInTime).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	updated, err := s.attendanceRepo.SetCheckOut(ctx, attendanceID, now, minutes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrAlreadyCheckedOut) {
			return nil, err
		}
		return nil, fmt.Errorf("set check-out: %w", err)
	}

	s.logger.InfoContext(ctx, "attendee checked out",
		"attendance_code", updated.Code,
		"duration_minutes", minutes,
	)
	return updated, nil
}

func (s *attendanceService) Verify(ctx context.Context, attendanceID, verifierID string) (*domain.Attendance, error) {
	updated, err := s.attendanceRepo.SetVerified(ctx, attendanceID, verifierID, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidState) {
			return nil, err
		}
		return nil, fmt.Errorf("set verified: %w", err)
	}
	return updated, nil
}

func (s *attendanceService) ListByEvent(ctx context.Context, eventID string, p domain.PaginationParams) ([]*domain.Attendance, int, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}
	records, total, err := s.attendanceRepo.ListByEventID(ctx, eventID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list attendance: %w", err)
	}
	return records, total, nil
}
