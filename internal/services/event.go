package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campusevents/internal/domain"
)

type eventService struct {
	eventRepo   domain.EventRepository
	collegeRepo domain.CollegeRepository
}

// NewEventService creates an EventService over the given repositories.
func NewEventService(eventRepo domain.EventRepository, collegeRepo domain.CollegeRepository) domain.EventService {
	return &eventService{
		eventRepo:   eventRepo,
		collegeRepo: collegeRepo,
	}
}

func (s *eventService) Create(ctx context.Context, event *domain.Event) error {
	if event.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be positive", domain.ErrInvalidState)
	}
	if !event.Type.Valid() {
		return fmt.Errorf("%w: unknown event type %q", domain.ErrInvalidState, event.Type)
	}
	if !event.RegistrationDeadline.Before(event.StartsAt) {
		return fmt.Errorf("%w: registration deadline must be before the event start", domain.ErrInvalidState)
	}
	if _, err := s.collegeRepo.GetByID(ctx, event.CollegeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get college: %w", err)
	}

	if event.Status == "" {
		event.Status = domain.EventStatusActive
	}
	// Registration opens on creation for active events; drafts stay closed
	// until an explicit status change.
	event.RegistrationOpen = event.Status == domain.EventStatusActive
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	if err := s.eventRepo.Create(ctx, event); err != nil {
		if errors.Is(err, domain.ErrConcurrencyConflict) {
			return domain.ErrConcurrencyConflict
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// GetByID resolves an event by UUID, or by its human-readable code when the
// identifier carries the EVT prefix (e.g. EVT042_COL001).
func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	lookup := s.eventRepo.GetByID
	if strings.HasPrefix(id, "EVT") {
		lookup = s.eventRepo.GetByCode
	}
	event, err := lookup(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, filter domain.EventFilter, p domain.PaginationParams) ([]*domain.Event, int, error) {
	events, total, err := s.eventRepo.List(ctx, filter, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

func (s *eventService) SetStatus(ctx context.Context, id string, status domain.EventStatus, registrationOpen bool) (*domain.Event, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown event status %q", domain.ErrInvalidState, status)
	}
	event, err := s.eventRepo.SetStatus(ctx, id, status, registrationOpen)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set event status: %w", err)
	}
	return event, nil
}
