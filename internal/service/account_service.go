package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/taylorconnect/hub/internal/domain"
	"github.com/taylorconnect/hub/pkg/logger"
	"github.com/taylorconnect/hub/pkg/mailer"
	"github.com/taylorconnect/hub/pkg/ratelimiter"
	"github.com/taylorconnect/hub/pkg/templates"
	"github.com/taylorconnect/hub/pkg/tracing"
)

// AccountService handles the email verification and password reset code flows
type AccountService struct {
	profiles    domain.ProfileRepository
	mailer      mailer.Mailer
	renderer    *templates.Renderer
	rateLimiter *ratelimiter.RateLimiter
	siteName    string
	logger      logger.Logger
	tracer      tracing.Tracer
	now         func() time.Time
	newCode     func() (string, error)
}

type AccountServiceConfig struct {
	Profiles    domain.ProfileRepository
	Mailer      mailer.Mailer
	Renderer    *templates.Renderer
	RateLimiter *ratelimiter.RateLimiter
	SiteName    string
	Logger      logger.Logger
	Tracer      tracing.Tracer
}

func NewAccountService(cfg AccountServiceConfig) *AccountService {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = tracing.GetTracer()
	}

	return &AccountService{
		profiles:    cfg.Profiles,
		mailer:      cfg.Mailer,
		renderer:    cfg.Renderer,
		rateLimiter: cfg.RateLimiter,
		siteName:    cfg.SiteName,
		logger:      cfg.Logger,
		tracer:      tracer,
		now:         time.Now,
		newCode:     domain.GenerateCode,
	}
}

var _ domain.AccountService = (*AccountService)(nil)

func (s *AccountService) checkRate(ctx context.Context, namespace, email string) error {
	if s.rateLimiter == nil || s.rateLimiter.Allow(namespace, email) {
		return nil
	}
	s.logger.WithFields(map[string]interface{}{
		"email":     email,
		"namespace": namespace,
	}).Warn("Email rate limit exceeded")
	s.tracer.AddAttribute(ctx, "error", "rate_limit_exceeded")
	return &domain.ErrRateLimited{RetryAfterSeconds: s.rateLimiter.RetryAfter(namespace, email)}
}

func (s *AccountService) sendCode(ctx context.Context, template, subject, email, code string) error {
	body, err := s.renderer.Render(ctx, template, map[string]interface{}{
		"code":            code,
		"email":           email,
		"expires_minutes": int(domain.CodeTTL / time.Minute),
	})
	if err != nil {
		return fmt.Errorf("failed to render %s email: %w", template, err)
	}

	err = s.mailer.Send(ctx, mailer.Message{
		To:      []string{email},
		Subject: subject,
		HTML:    body.HTML,
		Text:    body.Text,
	})
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"provider": s.mailer.Provider(),
			"template": template,
			"error":    err.Error(),
		}).Error("Failed to send code email")
		return &domain.ErrEmailDelivery{Err: err}
	}
	return nil
}

// SendVerificationCode emails a verification code, generating one when code is
// empty, and returns the code that was sent
func (s *AccountService) SendVerificationCode(ctx context.Context, email, code string) (string, error) {
	ctx, span := s.tracer.StartServiceSpan(ctx, "AccountService", "SendVerificationCode")
	defer span.End()

	email = domain.NormalizeEmail(email)
	if email == "" {
		return "", domain.NewValidationError("Email is required")
	}
	if err := s.checkRate(ctx, ratelimiter.NamespaceVerification, email); err != nil {
		return "", err
	}

	if code == "" {
		generated, err := s.newCode()
		if err != nil {
			s.tracer.MarkSpanError(ctx, err)
			return "", err
		}
		code = generated
	}

	subject := fmt.Sprintf("Your %s verification code", s.siteName)
	if err := s.sendCode(ctx, templates.VerificationCode, subject, email, code); err != nil {
		s.tracer.MarkSpanError(ctx, err)
		return "", err
	}

	return code, nil
}

// RequestPasswordReset stores a fresh code on the profile and emails it
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	ctx, span := s.tracer.StartServiceSpan(ctx, "AccountService", "RequestPasswordReset")
	defer span.End()

	email = domain.NormalizeEmail(email)
	if err := s.checkRate(ctx, ratelimiter.NamespacePasswordReset, email); err != nil {
		return err
	}

	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		s.tracer.MarkSpanError(ctx, err)
		return err
	}
	s.tracer.AddAttribute(ctx, "user.id", profile.ID)

	code, err := s.newCode()
	if err != nil {
		return err
	}
	if err := s.profiles.SetVerificationCode(ctx, profile.ID, code, s.now().UTC()); err != nil {
		s.logger.WithField("user_id", profile.ID).Error(fmt.Sprintf("Failed to store reset code: %v", err))
		s.tracer.MarkSpanError(ctx, err)
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	subject := fmt.Sprintf("Your %s password reset code", s.siteName)
	if err := s.sendCode(ctx, templates.PasswordReset, subject, profile.Email, code); err != nil {
		s.tracer.MarkSpanError(ctx, err)
		return err
	}

	s.logger.WithField("user_id", profile.ID).Info("Password reset code sent")
	return nil
}

// verify counts every submitted code against the email before looking it up
func (s *AccountService) verify(ctx context.Context, email, code string) (*domain.Profile, error) {
	email = domain.NormalizeEmail(email)
	if err := s.checkRate(ctx, ratelimiter.NamespaceCodeCheck, email); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			return nil, domain.ErrInvalidCode
		}
		return nil, err
	}
	if err := profile.CheckCode(code, s.now().UTC()); err != nil {
		return nil, err
	}
	return profile, nil
}

// VerifyResetCode checks the code without consuming it
func (s *AccountService) VerifyResetCode(ctx context.Context, email, code string) error {
	ctx, span := s.tracer.StartServiceSpan(ctx, "AccountService", "VerifyResetCode")
	defer span.End()

	if _, err := s.verify(ctx, email, code); err != nil {
		s.tracer.MarkSpanError(ctx, err)
		return err
	}
	return nil
}

// UpdatePassword consumes a valid code and stores the bcrypt hash of the new password
func (s *AccountService) UpdatePassword(ctx context.Context, req domain.UpdatePasswordRequest) error {
	ctx, span := s.tracer.StartServiceSpan(ctx, "AccountService", "UpdatePassword")
	defer span.End()

	if err := req.Validate(); err != nil {
		return err
	}

	profile, err := s.verify(ctx, req.Email, req.Code)
	if err != nil {
		s.tracer.MarkSpanError(ctx, err)
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.profiles.UpdatePassword(ctx, profile.ID, string(hash), s.now().UTC()); err != nil {
		s.logger.WithField("user_id", profile.ID).Error(fmt.Sprintf("Failed to update password: %v", err))
		s.tracer.MarkSpanError(ctx, err)
		return fmt.Errorf("failed to update password: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Reset(ratelimiter.NamespacePasswordReset, profile.Email)
		s.rateLimiter.Reset(ratelimiter.NamespaceCodeCheck, profile.Email)
	}

	s.logger.WithField("user_id", profile.ID).Info("Password updated")
	return nil
}
