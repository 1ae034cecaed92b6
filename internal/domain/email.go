package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeEmailData holds data for the attendee welcome email.
type WelcomeEmailData struct {
	Email string
	Name  string
}

// OrganizerRequestEmailData holds data for organizer request emails.
type OrganizerRequestEmailData struct {
	Email            string
	OrganizationName string
	RequestID        string
	// Status is set for decision emails.
	Status OrganizerRequestStatus
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcome(ctx context.Context, data *WelcomeEmailData) error
	SendOrganizerRequestReceived(ctx context.Context, data *OrganizerRequestEmailData) error
	SendOrganizerDecision(ctx context.Context, data *OrganizerRequestEmailData) error
}
