package domain

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_profile_repository.go -package mocks github.com/taylorconnect/hub/internal/domain ProfileRepository
//go:generate mockgen -destination mocks/mock_account_service.go -package mocks github.com/taylorconnect/hub/internal/domain AccountService

// CodeTTL is how long a verification or reset code stays valid
const CodeTTL = 10 * time.Minute

// MinPasswordLength applies to passwords set through the reset flow
const MinPasswordLength = 6

// Profile is the subset of a user profile the backend touches
type Profile struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	UserType         string    `json:"user_type"`
	Status           string    `json:"status"`
	Role             string    `json:"role"`
	VerificationCode string    `json:"-"`
	PasswordHash     string    `json:"-"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CheckCode compares a submitted code with the stored one. The code is issued at
// UpdatedAt and expires after CodeTTL.
func (p *Profile) CheckCode(code string, now time.Time) error {
	if p.VerificationCode == "" || p.VerificationCode != code {
		return ErrInvalidCode
	}
	if now.Sub(p.UpdatedAt) > CodeTTL {
		return ErrCodeExpired
	}
	return nil
}

// GenerateCode returns six random decimal digits
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// NormalizeEmail trims and lowercases an address for lookups
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type SendVerificationRequest struct {
	Email string `json:"email"`
	Code  string `json:"code,omitempty"`
}

func (r *SendVerificationRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return NewValidationError("Email is required")
	}
	return nil
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

func (r *PasswordResetRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return NewValidationError("Email is required")
	}
	return nil
}

type VerifyResetCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (r *VerifyResetCodeRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Code) == "" {
		return NewValidationError("Email and code are required")
	}
	return nil
}

type UpdatePasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

func (r *UpdatePasswordRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Code) == "" || r.NewPassword == "" {
		return NewValidationError("Email, code, and new password are required")
	}
	if len(r.NewPassword) < MinPasswordLength {
		return NewValidationError(fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
	}
	return nil
}

// ProfileRepository reads and updates profiles for the code flows
type ProfileRepository interface {
	// GetByEmail returns ErrNotFound when no profile has this address
	GetByEmail(ctx context.Context, email string) (*Profile, error)

	// SetVerificationCode stores a code and stamps its issue time
	SetVerificationCode(ctx context.Context, profileID, code string, issuedAt time.Time) error

	// UpdatePassword stores a new hash and clears the code
	UpdatePassword(ctx context.Context, profileID, passwordHash string, at time.Time) error
}

// AccountService sends codes and completes password resets
type AccountService interface {
	// SendVerificationCode emails a code, generating one when code is empty, and returns it
	SendVerificationCode(ctx context.Context, email, code string) (string, error)
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, email, code string) error
	UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error
}
