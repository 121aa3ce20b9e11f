package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/taylorconnect/hub/internal/domain"
	"github.com/taylorconnect/hub/pkg/logger"
	"github.com/taylorconnect/hub/pkg/mailer"
	"github.com/taylorconnect/hub/pkg/ratelimiter"
	"github.com/taylorconnect/hub/pkg/templates"
	"github.com/taylorconnect/hub/pkg/tracing"
)

// MessagingService sends the contact relay, signup confirmations and chat notifications
type MessagingService struct {
	mailer      mailer.Mailer
	renderer    *templates.Renderer
	rateLimiter *ratelimiter.RateLimiter
	contactTo   string
	contactFrom string
	siteURL     string
	logger      logger.Logger
	tracer      tracing.Tracer
}

type MessagingServiceConfig struct {
	Mailer      mailer.Mailer
	Renderer    *templates.Renderer
	RateLimiter *ratelimiter.RateLimiter
	ContactTo   string
	ContactFrom string
	SiteURL     string
	Logger      logger.Logger
	Tracer      tracing.Tracer
}

func NewMessagingService(cfg MessagingServiceConfig) *MessagingService {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = tracing.GetTracer()
	}

	return &MessagingService{
		mailer:      cfg.Mailer,
		renderer:    cfg.Renderer,
		rateLimiter: cfg.RateLimiter,
		contactTo:   cfg.ContactTo,
		contactFrom: cfg.ContactFrom,
		siteURL:     strings.TrimRight(cfg.SiteURL, "/"),
		logger:      cfg.Logger,
		tracer:      tracer,
	}
}

var _ domain.MessagingService = (*MessagingService)(nil)

// RelayContact forwards a contact form submission to the site inbox with the
// visitor as reply-to
func (s *MessagingService) RelayContact(ctx context.Context, req domain.ContactRequest, submittedAt time.Time) error {
	ctx, span := s.tracer.StartServiceSpan(ctx, "MessagingService", "RelayContact")
	defer span.End()

	if err := req.Validate(); err != nil {
		return err
	}
	if !govalidator.IsEmail(req.Email) {
		return domain.NewValidationError("Invalid email address")
	}

	rateKey := domain.NormalizeEmail(req.Email)
	if s.rateLimiter != nil && !s.rateLimiter.Allow(ratelimiter.NamespaceContact, rateKey) {
		s.logger.WithField("email", req.Email).Warn("Contact form rate limit exceeded")
		s.tracer.AddAttribute(ctx, "error", "rate_limit_exceeded")
		return &domain.ErrRateLimited{RetryAfterSeconds: s.rateLimiter.RetryAfter(ratelimiter.NamespaceContact, rateKey)}
	}

	body, err := s.renderer.Render(ctx, templates.ContactForm, map[string]interface{}{
		"name":         req.Name,
		"email":        req.Email,
		"message":      req.Message,
		"message_html": strings.ReplaceAll(html.EscapeString(req.Message), "\n", "<br>"),
		"submitted_at": submittedAt.UTC().Format("January 2, 2006 at 3:04 PM MST"),
	})
	if err != nil {
		s.tracer.MarkSpanError(ctx, err)
		return fmt.Errorf("failed to render contact email: %w", err)
	}

	msg := mailer.Message{
		From:    s.contactFrom,
		To:      []string{s.contactTo},
		ReplyTo: mailer.FormatAddress(req.Name, req.Email),
		Subject: "New Contact Form Submission - " + req.Name,
		HTML:    body.HTML,
		Text:    body.Text,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"provider": s.mailer.Provider(),
			"error":    err.Error(),
		}).Error("Failed to relay contact form")
		s.tracer.MarkSpanError(ctx, err)
		return &domain.ErrEmailDelivery{Err: err}
	}

	s.logger.WithField("email", req.Email).Info("Contact form relayed")
	return nil
}

// NotifySignups emails a confirmation to every person signed up by someone else.
// A failed recipient is counted and the batch continues.
func (s *MessagingService) NotifySignups(ctx context.Context, signups []domain.Signup) domain.SignupNotifyResult {
	ctx, span := s.tracer.StartServiceSpan(ctx, "MessagingService", "NotifySignups")
	defer span.End()

	var result domain.SignupNotifyResult
	for _, signup := range signups {
		if err := s.sendSignupConfirmation(ctx, signup); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"email":    signup.Email,
				"event_id": signup.EventID,
				"error":    err.Error(),
			}).Error("Failed to send signup confirmation")
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", signup.Email, err))
			continue
		}
		result.Sent++
	}

	s.tracer.AddAttribute(ctx, "signups.sent", result.Sent)
	s.tracer.AddAttribute(ctx, "signups.failed", result.Failed)
	return result
}

func (s *MessagingService) sendSignupConfirmation(ctx context.Context, signup domain.Signup) error {
	recipientName := signup.Name
	if recipientName == "" {
		recipientName = "there"
	}

	body, err := s.renderer.Render(ctx, templates.SignupConfirmation, map[string]interface{}{
		"recipient_name": recipientName,
		"event_name":     signup.EventName,
		"event_date":     signup.EventDate,
		"event_location": signup.EventLocation,
		"signed_up_by":   signup.SignedUpBy,
	})
	if err != nil {
		return fmt.Errorf("failed to render confirmation: %w", err)
	}

	return s.mailer.Send(ctx, mailer.Message{
		To:      []string{signup.Email},
		Subject: "You've been signed up for: " + signup.EventName,
		HTML:    body.HTML,
		Text:    body.Text,
	})
}

// SendChatNotification emails one recipient about a new chat message
func (s *MessagingService) SendChatNotification(ctx context.Context, email domain.ChatNotificationEmail) error {
	ctx, span := s.tracer.StartServiceSpan(ctx, "MessagingService", "SendChatNotification")
	defer span.End()

	recipientName := email.RecipientName
	if recipientName == "" {
		recipientName = "there"
	}
	eventURL := ""
	if s.siteURL != "" && email.EventID != "" {
		eventURL = s.siteURL + "/events/" + email.EventID
	}

	body, err := s.renderer.Render(ctx, templates.ChatNotification, map[string]interface{}{
		"recipient_name":    recipientName,
		"event_title":       email.EventTitle,
		"event_description": domain.TruncateText(email.EventDescription, domain.DescriptionPreviewLength),
		"event_url":         eventURL,
		"message":           email.Message,
		"sender_label":      email.SenderLabel,
	})
	if err != nil {
		s.tracer.MarkSpanError(ctx, err)
		return fmt.Errorf("failed to render chat notification: %w", err)
	}

	err = s.mailer.Send(ctx, mailer.Message{
		To:      []string{email.To},
		Subject: `New message in "` + email.EventTitle + `" chat`,
		HTML:    body.HTML,
		Text:    body.Text,
	})
	if err != nil {
		s.tracer.MarkSpanError(ctx, err)
		return &domain.ErrEmailDelivery{Err: err}
	}
	return nil
}
