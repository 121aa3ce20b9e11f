package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/taylorconnect/hub/internal/domain"
)

// NotificationPreferenceRepository implements domain.NotificationPreferenceRepository
type NotificationPreferenceRepository struct {
	systemDB *sql.DB
}

// NewNotificationPreferenceRepository creates a new NotificationPreferenceRepository
func NewNotificationPreferenceRepository(db *sql.DB) *NotificationPreferenceRepository {
	return &NotificationPreferenceRepository{
		systemDB: db,
	}
}

// Get returns the saved preferences of a user
func (r *NotificationPreferenceRepository) Get(ctx context.Context, userID string) (*domain.NotificationPreference, error) {
	var pref domain.NotificationPreference
	err := r.systemDB.QueryRowContext(ctx, `
		SELECT user_id, email_frequency, chat_notifications, event_updates
		FROM notification_preferences
		WHERE user_id = $1
	`, userID).Scan(&pref.UserID, &pref.EmailFrequency, &pref.ChatNotifications, &pref.EventUpdates)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.ErrNotFound{Entity: "notification preferences", ID: userID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification preferences: %w", err)
	}

	return &pref, nil
}
