package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RegistrationEmailData holds data for the registration confirmation email,
// sent for both accepted and waitlisted registrations.
type RegistrationEmailData struct {
	Email            string
	StudentName      string
	EventName        string
	RegistrationCode string
	Waitlisted       bool
}

// PromotionEmailData holds data for the waitlist promotion email.
type PromotionEmailData struct {
	Email            string
	StudentName      string
	EventName        string
	RegistrationCode string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRegistrationConfirmation(ctx context.Context, data *RegistrationEmailData) error
	SendWaitlistPromotion(ctx context.Context, data *PromotionEmailData) error
}
