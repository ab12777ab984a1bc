package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"campusevents/internal/domain"
)

type registrationService struct {
	registrationRepo domain.RegistrationRepository
	eventRepo        domain.EventRepository
	userRepo         domain.UserRepository
	emailService     domain.EmailService
	logger           *slog.Logger
}

// NewRegistrationService creates a RegistrationService over the given repositories.
// emailService may be nil; notification emails are best-effort.
func NewRegistrationService(
	registrationRepo domain.RegistrationRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		emailService:     emailService,
		logger:           logger,
	}
}

func (s *registrationService) Register(ctx context.Context, eventID, studentID string, specialRequirements *string) (*domain.Registration, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get student: %w", err)
	}

	paymentStatus := domain.PaymentStatusNotRequired
	if event.RegistrationFee > 0 {
		paymentStatus = domain.PaymentStatusPending
	}

	now := time.Now()
	reg := &domain.Registration{
		StudentID:           studentID,
		EventID:             eventID,
		CollegeID:           student.CollegeID,
		RegisteredAt:        now,
		PaymentStatus:       paymentStatus,
		PaymentAmount:       event.RegistrationFee,
		SpecialRequirements: specialRequirements,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.registrationRepo.Register(ctx, reg); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateRegistration),
			errors.Is(err, domain.ErrRegistrationClosed),
			errors.Is(err, domain.ErrNotFound),
			errors.Is(err, domain.ErrConcurrencyConflict):
			return nil, err
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	s.logger.InfoContext(ctx, "registration created",
		"registration_code", reg.Code,
		"event_id", eventID,
		"student_id", studentID,
		"status", reg.Status,
	)
	s.notifyRegistration(ctx, student, event, reg)
	return reg, nil
}

func (s *registrationService) Cancel(ctx context.Context, registrationID, actorID string, actorRole domain.Role, reason *string) (*domain.CancellationResult, error) {
	reg, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	if reg.StudentID != actorID && actorRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	result, err := s.registrationRepo.Cancel(ctx, registrationID, time.Now(), reason)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound),
			errors.Is(err, domain.ErrInvalidState),
			errors.Is(err, domain.ErrConcurrencyConflict):
			return nil, err
		}
		return nil, fmt.Errorf("cancel registration: %w", err)
	}

	s.logger.InfoContext(ctx, "registration cancelled",
		"registration_code", result.Cancelled.Code,
		"event_id", result.Cancelled.EventID,
	)
	if result.Promoted != nil {
		s.logger.InfoContext(ctx, "waitlisted registration promoted",
			"registration_code", result.Promoted.Code,
			"event_id", result.Promoted.EventID,
		)
		s.notifyPromotion(ctx, result.Promoted)
	}
	return result, nil
}

func (s *registrationService) List(ctx context.Context, filter domain.RegistrationFilter, p domain.PaginationParams) ([]*domain.Registration, int, error) {
	regs, total, err := s.registrationRepo.List(ctx, filter, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}
	return regs, total, nil
}

func (s *registrationService) RecordPayment(ctx context.Context, registrationID string, status domain.PaymentStatus, amount float64, ref *string) (*domain.Registration, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", domain.ErrInvalidState, status)
	}
	var paidAt *time.Time
	if status == domain.PaymentStatusPaid || status == domain.PaymentStatusRefunded {
		now := time.Now()
		paidAt = &now
	}
	reg, err := s.registrationRepo.UpdatePayment(ctx, registrationID, status, amount, ref, paidAt)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidState) {
			return nil, err
		}
		return nil, fmt.Errorf("update payment: %w", err)
	}
	return reg, nil
}

// notifyRegistration sends the confirmation email without blocking the request.
func (s *registrationService) notifyRegistration(ctx context.Context, student *domain.User, event *domain.Event, reg *domain.Registration) {
	if s.emailService == nil {
		return
	}
	data := &domain.RegistrationEmailData{
		Email:            student.Email,
		StudentName:      student.Name,
		EventName:        event.Name,
		RegistrationCode: reg.Code,
		Waitlisted:       reg.Status == domain.RegistrationStatusWaitlisted,
	}
	go func(ctx context.Context) {
		if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
			s.logger.ErrorContext(ctx, "registration email failed", "err", err, "email", data.Email)
		}
	}(context.WithoutCancel(ctx))
}

// notifyPromotion resolves the promoted student and event before mailing;
// lookup failures only cost the notification, never the cancellation.
func (s *registrationService) notifyPromotion(ctx context.Context, promoted *domain.Registration) {
	if s.emailService == nil {
		return
	}
	student, err := s.userRepo.GetByID(ctx, promoted.StudentID)
	if err != nil {
		s.logger.ErrorContext(ctx, "get student for promotion email", "err", err, "student_id", promoted.StudentID)
		return
	}
	event, err := s.eventRepo.GetByID(ctx, promoted.EventID)
	if err != nil {
		s.logger.ErrorContext(ctx, "get event for promotion email", "err", err, "event_id", promoted.EventID)
		return
	}
	data := &domain.PromotionEmailData{
		Email:            student.Email,
		StudentName:      student.Name,
		EventName:        event.Name,
		RegistrationCode: promoted.Code,
	}
	go func(ctx context.Context) {
		if err := s.emailService.SendWaitlistPromotion(ctx, data); err != nil {
			s.logger.ErrorContext(ctx, "promotion email failed", "err", err, "email", data.Email)
		}
	}(context.WithoutCancel(ctx))
}
