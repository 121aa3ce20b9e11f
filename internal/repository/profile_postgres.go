package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/taylorconnect/hub/internal/domain"
)

// ProfileRepository implements domain.ProfileRepository using PostgreSQL
type ProfileRepository struct {
	systemDB *sql.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{
		systemDB: db,
	}
}

// GetByEmail looks a profile up by address, ignoring case
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	var p domain.Profile
	err := r.systemDB.QueryRowContext(ctx, `
		SELECT id, email, user_type, status, role,
			COALESCE(verification_code, ''), COALESCE(password_hash, ''), updated_at
		FROM profiles
		WHERE LOWER(email) = LOWER($1)
	`, email).Scan(&p.ID, &p.Email, &p.UserType, &p.Status, &p.Role,
		&p.VerificationCode, &p.PasswordHash, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrNotFound{Entity: "profile", ID: email, Message: "No account found with this email address."}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &p, nil
}

// SetVerificationCode stores a code; updated_at doubles as its issue time
func (r *ProfileRepository) SetVerificationCode(ctx context.Context, profileID, code string, issuedAt time.Time) error {
	result, err := r.systemDB.ExecContext(ctx,
		"UPDATE profiles SET verification_code = $1, updated_at = $2 WHERE id = $3",
		code, issuedAt, profileID,
	)
	if err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	return requireAffected(result, &domain.ErrNotFound{Entity: "profile", ID: profileID})
}

// UpdatePassword stores a new hash and clears the code
func (r *ProfileRepository) UpdatePassword(ctx context.Context, profileID, passwordHash string, at time.Time) error {
	result, err := r.systemDB.ExecContext(ctx,
		"UPDATE profiles SET password_hash = $1, verification_code = NULL, updated_at = $2 WHERE id = $3",
		passwordHash, at, profileID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return requireAffected(result, &domain.ErrNotFound{Entity: "profile", ID: profileID})
}
