package domain

import (
	"context"
	"time"
)

// EventStatus is the lifecycle status of an event.
type EventStatus string

// Event lifecycle statuses.
const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusActive    EventStatus = "active"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// Valid reports whether s is a known event status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusDraft, EventStatusActive, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}

// EventType classifies an event.
type EventType string

// Event types.
const (
	EventTypeWorkshop  EventType = "workshop"
	EventTypeSeminar   EventType = "seminar"
	EventTypeFest      EventType = "fest"
	EventTypeHackathon EventType = "hackathon"
	EventTypeSports    EventType = "sports"
	EventTypeCultural  EventType = "cultural"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeWorkshop, EventTypeSeminar, EventTypeFest, EventTypeHackathon, EventTypeSports, EventTypeCultural:
		return true
	}
	return false
}

// Event represents a campus event. TotalRegistrations counts registrations in
// status "registered" only; TotalAttendance counts attendance records. Both
// are caches recomputed from live rows inside the same transaction as the
// write that changes them; the registration and attendance repositories are
// the only writers.
// swagger:model Event
type Event struct {
	ID                   string      `json:"id"`
	Code                 string      `json:"code"`
	Name                 string      `json:"name"`
	Description          string      `json:"description,omitempty"`
	Type                 EventType   `json:"type"`
	Venue                string      `json:"venue,omitempty"`
	Capacity             int         `json:"capacity"`
	StartsAt             time.Time   `json:"starts_at"`
	RegistrationDeadline time.Time   `json:"registration_deadline"`
	RegistrationFee      float64     `json:"registration_fee"`
	RegistrationOpen     bool        `json:"registration_open"`
	Status               EventStatus `json:"status"`
	CollegeID            string      `json:"college_id"`
	CreatedBy            string      `json:"created_by"`
	TotalRegistrations   int         `json:"total_registrations"`
	TotalAttendance      int         `json:"total_attendance"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// EventFilter narrows event list queries. Nil fields are ignored.
type EventFilter struct {
	CollegeID *string
	Status    *EventStatus
	Type      *EventType
}

// EventRepository defines the interface for event storage. Counter columns
// are owned by the registration and attendance repositories and must not be
// written through Update.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetByCode(ctx context.Context, code string) (*Event, error)
	List(ctx context.Context, filter EventFilter, p PaginationParams) ([]*Event, int, error)
	SetStatus(ctx context.Context, id string, status EventStatus, registrationOpen bool) (*Event, error)
}

// EventService defines the business logic for the event catalog.
type EventService interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter, p PaginationParams) ([]*Event, int, error)
	SetStatus(ctx context.Context, id string, status EventStatus, registrationOpen bool) (*Event, error)
}
