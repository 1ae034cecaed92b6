package services

import (
	"context"
	"fmt"
	"log/slog"

	"campusevents/internal/domain"
)

// Template names under internal/adapters/email/templates.
const (
	templateWelcome                  = "welcome"
	templateOrganizerRequestReceived = "organizer_request_received"
	templateOrganizerDecision        = "organizer_decision"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

func (s *emailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome email data is nil")
	}
	return s.send(ctx, templateWelcome, data.Email, data)
}

func (s *emailService) SendOrganizerRequestReceived(ctx context.Context, data *domain.OrganizerRequestEmailData) error {
	if data == nil {
		return fmt.Errorf("organizer request email data is nil")
	}
	return s.send(ctx, templateOrganizerRequestReceived, data.Email, data)
}

func (s *emailService) SendOrganizerDecision(ctx context.Context, data *domain.OrganizerRequestEmailData) error {
	if data == nil {
		return fmt.Errorf("organizer decision email data is nil")
	}
	return s.send(ctx, templateOrganizerDecision, data.Email, data)
}

func (s *emailService) send(ctx context.Context, template, to string, data any) error {
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", template, err)
	}
	if err := s.mailer.Send(ctx, to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", template, err)
	}
	s.logger.InfoContext(ctx, "email sent", "template", template, "to", to)
	return nil
}
