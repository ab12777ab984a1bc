package services

import (
	"context"
	"fmt"
	"log"

	"campusevents/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendRegistrationConfirmation sends the registration (or waitlist) confirmation email.
func (s *emailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	if data == nil {
		return fmt.Errorf("registration email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("registration", data)
	if err != nil {
		return fmt.Errorf("failed to render registration template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send registration email: %w", err)
	}
	log.Printf("[EMAIL] Registration confirmation sent to %s", data.Email)
	return nil
}

// SendWaitlistPromotion notifies a student their waitlisted registration was confirmed.
func (s *emailService) SendWaitlistPromotion(ctx context.Context, data *domain.PromotionEmailData) error {
	if data == nil {
		return fmt.Errorf("promotion email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("promotion", data)
	if err != nil {
		return fmt.Errorf("failed to render promotion template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send promotion email: %w", err)
	}
	log.Printf("[EMAIL] Waitlist promotion sent to %s", data.Email)
	return nil
}
