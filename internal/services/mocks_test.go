package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"campusevents/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type mockEventRepository struct {
	events map[string]*domain.Event
	err    error
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error { return m.err }

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) GetByCode(ctx context.Context, code string) (*domain.Event, error) {
	for _, ev := range m.events {
		if ev.Code == code {
			return ev, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockEventRepository) List(ctx context.Context, filter domain.EventFilter, p domain.PaginationParams) ([]*domain.Event, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	var out []*domain.Event
	for _, ev := range m.events {
		out = append(out, ev)
	}
	return out, len(out), nil
}

func (m *mockEventRepository) SetStatus(ctx context.Context, id string, status domain.EventStatus, registrationOpen bool) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	ev.Status = status
	ev.RegistrationOpen = registrationOpen
	return ev, nil
}

type mockUserRepository struct {
	users map[string]*domain.User
	err   error
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error { return m.err }

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

// mockRegistrationRepository applies the capacity rules in memory so service
// tests can drive accept/waitlist/duplicate outcomes without a database.
type mockRegistrationRepository struct {
	events        map[string]*domain.Event
	registrations map[string]*domain.Registration
	seq           int
	registerErr   error
	cancelErr     error
}

func newMockRegistrationRepository(events map[string]*domain.Event) *mockRegistrationRepository {
	return &mockRegistrationRepository{
		events:        events,
		registrations: make(map[string]*domain.Registration),
	}
}

func (m *mockRegistrationRepository) acceptedCount(eventID string) int {
	n := 0
	for _, reg := range m.registrations {
		if reg.EventID == eventID && reg.Status == domain.RegistrationStatusRegistered {
			n++
		}
	}
	return n
}

func (m *mockRegistrationRepository) Register(ctx context.Context, reg *domain.Registration) error {
	if m.registerErr != nil {
		return m.registerErr
	}
	event, ok := m.events[reg.EventID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, existing := range m.registrations {
		if existing.EventID == reg.EventID && existing.StudentID == reg.StudentID &&
			existing.Status != domain.RegistrationStatusCancelled {
			return domain.ErrDuplicateRegistration
		}
	}
	switch domain.DecideSlot(event, m.acceptedCount(reg.EventID), reg.RegisteredAt) {
	case domain.SlotRejected:
		return domain.ErrRegistrationClosed
	case domain.SlotAccepted:
		reg.Status = domain.RegistrationStatusRegistered
	case domain.SlotWaitlisted:
		reg.Status = domain.RegistrationStatusWaitlisted
	}
	m.seq++
	reg.ID = fmt.Sprintf("reg-%d", m.seq)
	reg.Code = domain.FormatRegistrationCode(m.seq, event.Code, "STU"+reg.StudentID)
	m.registrations[reg.ID] = reg
	return nil
}

func (m *mockRegistrationRepository) Cancel(ctx context.Context, registrationID string, at time.Time, reason *string) (*domain.CancellationResult, error) {
	if m.cancelErr != nil {
		return nil, m.cancelErr
	}
	reg, ok := m.registrations[registrationID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if reg.Status == domain.RegistrationStatusCancelled {
		return nil, domain.ErrInvalidState
	}
	prior := reg.Status
	reg.Status = domain.RegistrationStatusCancelled
	reg.CancelledAt = &at
	reg.CancellationReason = reason

	result := &domain.CancellationResult{Cancelled: reg}
	if prior == domain.RegistrationStatusRegistered {
		var oldest *domain.Registration
		for _, cand := range m.registrations {
			if cand.EventID != reg.EventID || cand.Status != domain.RegistrationStatusWaitlisted {
				continue
			}
			if oldest == nil || cand.RegisteredAt.Before(oldest.RegisteredAt) {
				oldest = cand
			}
		}
		if oldest != nil {
			oldest.Status = domain.RegistrationStatusRegistered
			result.Promoted = oldest
		}
	}
	return result, nil
}

func (m *mockRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	reg, ok := m.registrations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return reg, nil
}

func (m *mockRegistrationRepository) List(ctx context.Context, filter domain.RegistrationFilter, p domain.PaginationParams) ([]*domain.Registration, int, error) {
	var out []*domain.Registration
	for _, reg := range m.registrations {
		if filter.EventID != nil && reg.EventID != *filter.EventID {
			continue
		}
		if filter.StudentID != nil && reg.StudentID != *filter.StudentID {
			continue
		}
		if filter.Status != nil && reg.Status != *filter.Status {
			continue
		}
		out = append(out, reg)
	}
	return out, len(out), nil
}

func (m *mockRegistrationRepository) UpdatePayment(ctx context.Context, id string, status domain.PaymentStatus, amount float64, ref *string, paidAt *time.Time) (*domain.Registration, error) {
	reg, ok := m.registrations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if reg.Status == domain.RegistrationStatusCancelled {
		return nil, domain.ErrInvalidState
	}
	reg.PaymentStatus = status
	reg.PaymentAmount = amount
	reg.PaymentRef = ref
	reg.PaymentDate = paidAt
	return reg, nil
}

type mockAttendanceRepository struct {
	records    map[string]*domain.Attendance
	checkInErr error
	err        error
}

func (m *mockAttendanceRepository) CheckIn(ctx context.Context, att *domain.Attendance) error {
	if m.checkInErr != nil {
		return m.checkInErr
	}
	att.ID = "att-" + att.StudentID + "-" + att.EventID
	if m.records == nil {
		m.records = make(map[string]*domain.Attendance)
	}
	m.records[att.ID] = att
	return nil
}

func (m *mockAttendanceRepository) GetByID(ctx context.Context, id string) (*domain.Attendance, error) {
	if m.err != nil {
		return nil, m.err
	}
	att, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return att, nil
}

func (m *mockAttendanceRepository) GetByStudentAndEvent(ctx context.Context, studentID, eventID string) (*domain.Attendance, error) {
	for _, att := range m.records {
		if att.StudentID == studentID && att.EventID == eventID {
			return att, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockAttendanceRepository) ListByEventID(ctx context.Context, eventID string, p domain.PaginationParams) ([]*domain.Attendance, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	var out []*domain.Attendance
	for _, att := range m.records {
		if att.EventID == eventID {
			out = append(out, att)
		}
	}
	return out, len(out), nil
}

func (m *mockAttendanceRepository) SetCheckOut(ctx context.Context, id string, at time.Time, durationMinutes int) (*domain.Attendance, error) {
	att, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if att.CheckOutTime != nil {
		return nil, domain.ErrAlreadyCheckedOut
	}
	att.CheckOutTime = &at
	att.DurationMinutes = &durationMinutes
	return att, nil
}

func (m *mockAttendanceRepository) SetVerified(ctx context.Context, id, verifierID string, at time.Time) (*domain.Attendance, error) {
	att, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if att.Verified {
		return nil, domain.ErrInvalidState
	}
	att.Verified = true
	att.VerifiedBy = &verifierID
	att.VerifiedAt = &at
	return att, nil
}

type mockFeedbackRepository struct {
	items map[string]*domain.Feedback
	err   error
}

func (m *mockFeedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	if m.err != nil {
		return m.err
	}
	for _, existing := range m.items {
		if existing.AttendanceID == f.AttendanceID {
			return domain.ErrInvalidState
		}
	}
	f.ID = "fb-" + f.AttendanceID
	if m.items == nil {
		m.items = make(map[string]*domain.Feedback)
	}
	m.items[f.ID] = f
	return nil
}

func (m *mockFeedbackRepository) ListByEventID(ctx context.Context, eventID string, p domain.PaginationParams) ([]*domain.Feedback, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	var out []*domain.Feedback
	for _, f := range m.items {
		if f.EventID == eventID {
			out = append(out, f)
		}
	}
	return out, len(out), nil
}

func (m *mockFeedbackRepository) Summary(ctx context.Context, eventID string) (*domain.FeedbackSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	sum := &domain.FeedbackSummary{EventID: eventID}
	total := 0
	for _, f := range m.items {
		if f.EventID == eventID {
			sum.Count++
			total += f.OverallRating
		}
	}
	if sum.Count > 0 {
		sum.AverageRating = float64(total) / float64(sum.Count)
	}
	return sum, nil
}

type mockCollegeRepository struct {
	colleges map[string]*domain.College
	err      error
}

func (m *mockCollegeRepository) Create(ctx context.Context, college *domain.College) error {
	return m.err
}

func (m *mockCollegeRepository) GetByID(ctx context.Context, id string) (*domain.College, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.colleges[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (m *mockCollegeRepository) List(ctx context.Context) ([]*domain.College, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.College
	for _, c := range m.colleges {
		out = append(out, c)
	}
	return out, nil
}
