package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/taylorconnect/hub/internal/domain"
	"github.com/taylorconnect/hub/internal/domain/mocks"
	"github.com/taylorconnect/hub/pkg/logger"
	"github.com/taylorconnect/hub/pkg/mailer"
	pkgmocks "github.com/taylorconnect/hub/pkg/mocks"
	"github.com/taylorconnect/hub/pkg/ratelimiter"
	"github.com/taylorconnect/hub/pkg/templates"
)

type accountFixture struct {
	profiles *mocks.MockProfileRepository
	mailer   *pkgmocks.MockMailer
	service  *AccountService
	now      time.Time
}

func newAccountFixture(t *testing.T, ctrl *gomock.Controller, limiter *ratelimiter.RateLimiter) *accountFixture {
	f := &accountFixture{
		profiles: mocks.NewMockProfileRepository(ctrl),
		mailer:   pkgmocks.NewMockMailer(ctrl),
		now:      time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	f.service = NewAccountService(AccountServiceConfig{
		Profiles:    f.profiles,
		Mailer:      f.mailer,
		Renderer:    templates.NewRenderer("Taylor Connect Hub", ""),
		RateLimiter: limiter,
		SiteName:    "Taylor Connect Hub",
		Logger:      logger.NewTestLogger(t),
	})
	f.service.now = func() time.Time { return f.now }
	f.service.newCode = func() (string, error) { return "042917", nil }
	return f
}

func TestAccountService_SendVerificationCode(t *testing.T) {
	ctx := context.Background()

	t.Run("generates a code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newAccountFixture(t, ctrl, nil)

		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg mailer.Message) error {
			assert.Equal(t, []string{"sam@example.com"}, msg.To)
			assert.Equal(t, "Your Taylor Connect Hub verification code", msg.Subject)
			assert.Contains(t, msg.Text, "042917")
			return nil
		})

		code, err := f.service.SendVerificationCode(ctx, " Sam@Example.com ", "")
		require.NoError(t, err)
		assert.Equal(t, "042917", code)
	})

	t.Run("uses the supplied code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newAccountFixture(t, ctrl, nil)

		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

		code, err := f.service.SendVerificationCode(ctx, "sam@example.com", "111222")
		require.NoError(t, err)
		assert.Equal(t, "111222", code)
	})

	t.Run("send failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newAccountFixture(t, ctrl, nil)

		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("invalid api key"))
		f.mailer.EXPECT().Provider().Return("resend")

		_, err := f.service.SendVerificationCode(ctx, "sam@example.com", "")
		var delivery *domain.ErrEmailDelivery
		assert.ErrorAs(t, err, &delivery)
	})

	t.Run("empty email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newAccountFixture(t, ctrl, nil)

		_, err := f.service.SendVerificationCode(ctx, "  ", "")
		assert.EqualError(t, err, "validation error: Email is required")
	})

	t.Run("rate limited", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		limiter := ratelimiter.NewRateLimiter()
		defer limiter.Stop()
		limiter.SetPolicy(ratelimiter.NamespaceVerification, 1, 10*time.Minute)
		f := newAccountFixture(t, ctrl, limiter)

		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		_, err := f.service.SendVerificationCode(ctx, "sam@example.com", "")
		require.NoError(t, err)

		_, err = f.service.SendVerificationCode(ctx, "SAM@example.com", "")
		var limited *domain.ErrRateLimited
		assert.ErrorAs(t, err, &limited)
	})
}

func TestAccountService_RateLimitIsTracedAndLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	limiter := ratelimiter.NewRateLimiter()
	defer limiter.Stop()
	limiter.SetPolicy(ratelimiter.NamespacePasswordReset, 1, 10*time.Minute)

	mockLogger := pkgmocks.NewMockLogger(ctrl)
	mockTracer := pkgmocks.NewMockTracer(ctrl)
	profiles := mocks.NewMockProfileRepository(ctrl)
	mockMailer := pkgmocks.NewMockMailer(ctrl)

	svc := NewAccountService(AccountServiceConfig{
		Profiles:    profiles,
		Mailer:      mockMailer,
		Renderer:    templates.NewRenderer("Taylor Connect Hub", ""),
		RateLimiter: limiter,
		SiteName:    "Taylor Connect Hub",
		Logger:      mockLogger,
		Tracer:      mockTracer,
	})
	svc.newCode = func() (string, error) { return "042917", nil }

	mockTracer.EXPECT().StartServiceSpan(gomock.Any(), "AccountService", "RequestPasswordReset").
		DoAndReturn(func(ctx context.Context, _, name string) (context.Context, *trace.Span) {
			return trace.StartSpan(ctx, name)
		}).Times(2)
	mockTracer.EXPECT().AddAttribute(gomock.Any(), "user.id", "user-1")
	mockTracer.EXPECT().AddAttribute(gomock.Any(), "error", "rate_limit_exceeded")
	mockLogger.EXPECT().WithField("user_id", "user-1").Return(mockLogger)
	mockLogger.EXPECT().Info("Password reset code sent")
	mockLogger.EXPECT().WithFields(gomock.Any()).Return(mockLogger)
	mockLogger.EXPECT().Warn("Email rate limit exceeded")

	profiles.EXPECT().GetByEmail(gomock.Any(), "sam@example.com").Return(&domain.Profile{ID: "user-1", Email: "sam@example.com"}, nil)
	profiles.EXPECT().SetVerificationCode(gomock.Any(), "user-1", "042917", gomock.Any()).Return(nil)
	mockMailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "sam@example.com"))

	err := svc.RequestPasswordReset(context.Background(), "sam@example.com")
	var limited *domain.ErrRateLimited
	assert.ErrorAs(t, err, &limited)
}

func TestAccountService_RequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and sends the code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newAccountFixture(t, ctrl, nil)

		f.profiles.EXPECT().GetByEmail(gomock.Any(), "sam@example.com").Return(&domain.Profile{ID: "p1", Email: "sam@example.com"}, nil)
		f.profiles.EXPECT().SetVerificationCode(gomock.Any(), "p1", "042917", f.now).Return(nil)
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg mailer.Message) error {
			assert.Equal(t, "Your Taylor Connect Hub password reset code", msg.Subject)
			assert.Contains(t, msg.Text, "042917")
			return nil
		})

		require.NoError(t, f.service.RequestPasswordReset(ctx, "Sam@example.com"))
	})

	t.Run("unknown email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newAccountFixture(t, ctrl, nil)

		notFound := &domain.ErrNotFound{Entity: "profile", Message: "No account found with this email address."}
		f.profiles.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, notFound)

		err := f.service.RequestPasswordReset(ctx, "nobody@example.com")
		assert.Equal(t, notFound, err)
	})
}

func TestAccountService_VerifyResetCode(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		stored  string
		issued  time.Duration
		code    string
		wantErr error
	}{
		{"valid", "042917", -5 * time.Minute, "042917", nil},
		{"mismatch", "042917", -5 * time.Minute, "000000", domain.ErrInvalidCode},
		{"expired", "042917", -11 * time.Minute, "042917", domain.ErrCodeExpired},
		{"no code stored", "", -time.Minute, "042917", domain.ErrInvalidCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			f := newAccountFixture(t, ctrl, nil)

			f.profiles.EXPECT().GetByEmail(gomock.Any(), "sam@example.com").Return(&domain.Profile{
				ID:               "p1",
				Email:            "sam@example.com",
				VerificationCode: tt.stored,
				UpdatedAt:        f.now.Add(tt.issued),
			}, nil)

			err := f.service.VerifyResetCode(ctx, "sam@example.com", tt.code)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("unknown email reads as invalid code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newAccountFixture(t, ctrl, nil)

		f.profiles.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, &domain.ErrNotFound{})

		err := f.service.VerifyResetCode(ctx, "nobody@example.com", "042917")
		assert.ErrorIs(t, err, domain.ErrInvalidCode)
	})
}

func TestAccountService_CodeChecksAreRateLimited(t *testing.T) {
	ctx := context.Background()

	newLimiter := func(t *testing.T) *ratelimiter.RateLimiter {
		limiter := ratelimiter.NewRateLimiter()
		t.Cleanup(limiter.Stop)
		limiter.SetPolicy(ratelimiter.NamespaceCodeCheck, 3, 10*time.Minute)
		return limiter
	}

	t.Run("guessing stops after the budget", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newAccountFixture(t, ctrl, newLimiter(t))

		f.profiles.EXPECT().GetByEmail(gomock.Any(), "sam@example.com").Return(&domain.Profile{
			ID: "p1", Email: "sam@example.com", VerificationCode: "042917", UpdatedAt: f.now,
		}, nil).Times(3)

		for _, guess := range []string{"000001", "000002", "000003"} {
			assert.ErrorIs(t, f.service.VerifyResetCode(ctx, "sam@example.com", guess), domain.ErrInvalidCode)
		}

		err := f.service.VerifyResetCode(ctx, "Sam@Example.com", "042917")
		var limited *domain.ErrRateLimited
		require.ErrorAs(t, err, &limited)
		assert.Greater(t, limited.RetryAfterSeconds, 0)

		err = f.service.UpdatePassword(ctx, domain.UpdatePasswordRequest{Email: "sam@example.com", Code: "042917", NewPassword: "hunter22"})
		assert.ErrorAs(t, err, &limited)
	})

	t.Run("successful update clears the budget", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		limiter := newLimiter(t)
		f := newAccountFixture(t, ctrl, limiter)

		f.profiles.EXPECT().GetByEmail(gomock.Any(), "sam@example.com").Return(&domain.Profile{
			ID: "p1", Email: "sam@example.com", VerificationCode: "042917", UpdatedAt: f.now,
		}, nil).Times(3)
		f.profiles.EXPECT().UpdatePassword(gomock.Any(), "p1", gomock.Any(), f.now).Return(nil)

		assert.Error(t, f.service.VerifyResetCode(ctx, "sam@example.com", "000001"))
		assert.NoError(t, f.service.VerifyResetCode(ctx, "sam@example.com", "042917"))
		require.NoError(t, f.service.UpdatePassword(ctx, domain.UpdatePasswordRequest{Email: "sam@example.com", Code: "042917", NewPassword: "hunter22"}))

		assert.Equal(t, 0, limiter.RetryAfter(ratelimiter.NamespaceCodeCheck, "sam@example.com"))
	})
}

func TestAccountService_UpdatePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a bcrypt hash", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newAccountFixture(t, ctrl, nil)

		f.profiles.EXPECT().GetByEmail(gomock.Any(), "sam@example.com").Return(&domain.Profile{
			ID: "p1", Email: "sam@example.com", VerificationCode: "042917", UpdatedAt: f.now.Add(-time.Minute),
		}, nil)
		f.profiles.EXPECT().UpdatePassword(gomock.Any(), "p1", gomock.Any(), f.now).DoAndReturn(
			func(_ context.Context, _ string, hash string, _ time.Time) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter22")))
				return nil
			})

		err := f.service.UpdatePassword(ctx, domain.UpdatePasswordRequest{Email: "sam@example.com", Code: "042917", NewPassword: "hunter22"})
		require.NoError(t, err)
	})

	t.Run("short password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newAccountFixture(t, ctrl, nil)

		err := f.service.UpdatePassword(ctx, domain.UpdatePasswordRequest{Email: "sam@example.com", Code: "042917", NewPassword: "abc"})
		assert.EqualError(t, err, "validation error: Password must be at least 6 characters long")
	})

	t.Run("wrong code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newAccountFixture(t, ctrl, nil)

		f.profiles.EXPECT().GetByEmail(gomock.Any(), "sam@example.com").Return(&domain.Profile{
			ID: "p1", VerificationCode: "042917", UpdatedAt: f.now,
		}, nil)

		err := f.service.UpdatePassword(ctx, domain.UpdatePasswordRequest{Email: "sam@example.com", Code: "999999", NewPassword: "hunter22"})
		assert.ErrorIs(t, err, domain.ErrInvalidCode)
	})
}
