package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_notification_repository.go -package mocks github.com/taylorconnect/hub/internal/domain NotificationRepository
//go:generate mockgen -destination mocks/mock_notification_preference_repository.go -package mocks github.com/taylorconnect/hub/internal/domain NotificationPreferenceRepository
//go:generate mockgen -destination mocks/mock_dispatch_service.go -package mocks github.com/taylorconnect/hub/internal/domain DispatchService

// NotificationStatus tracks a notification through a dispatch pass
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending"
	// NotificationStatusSent means an email went out
	NotificationStatusSent NotificationStatus = "sent"
	// NotificationStatusSuppressed means preferences ruled the email out; the row is
	// closed without sending
	NotificationStatusSuppressed NotificationStatus = "suppressed"
)

const NotificationTypeChatMessage = "chat_message"

// EmailFrequency is how often a user wants notification emails
type EmailFrequency string

const (
	EmailFrequencyImmediate EmailFrequency = "immediate"
	EmailFrequencyDaily     EmailFrequency = "daily"
	EmailFrequencyWeekly    EmailFrequency = "weekly"
)

// Notification is a queued email about a chat message
type Notification struct {
	ID               string             `json:"id"`
	UserID           string             `json:"user_id"`
	EventID          string             `json:"event_id"`
	ChatMessageID    string             `json:"chat_message_id"`
	NotificationType string             `json:"notification_type"`
	ScheduledFor     time.Time          `json:"scheduled_for"`
	SentAt           *time.Time         `json:"sent_at,omitempty"`
	EmailSent        bool               `json:"email_sent"`
	Status           NotificationStatus `json:"status"`
}

// NotificationPreference is a user's delivery settings
type NotificationPreference struct {
	UserID            string         `json:"user_id"`
	EmailFrequency    EmailFrequency `json:"email_frequency"`
	ChatNotifications bool           `json:"chat_notifications"`
	EventUpdates      bool           `json:"event_updates"`
}

// DefaultNotificationPreference applies to users who never saved preferences
func DefaultNotificationPreference(userID string) *NotificationPreference {
	return &NotificationPreference{
		UserID:            userID,
		EmailFrequency:    EmailFrequencyImmediate,
		ChatNotifications: true,
		EventUpdates:      true,
	}
}

// PendingNotification is a due notification joined with what the email needs
type PendingNotification struct {
	Notification
	RecipientEmail   string
	RecipientName    string
	EventTitle       string
	EventDescription string
	Message          string
	// SenderOrganization is set when the message was posted by an organization
	SenderOrganization string
	SenderUserID       string
	IsAnonymous        bool
}

// SenderLabel names the poster without exposing individual volunteers
func (p *PendingNotification) SenderLabel() string {
	switch {
	case p.SenderOrganization != "":
		return p.SenderOrganization
	case p.SenderUserID != "" && !p.IsAnonymous:
		return "Volunteer"
	default:
		return "Anonymous"
	}
}

// DescriptionPreviewLength bounds the event description quoted in emails
const DescriptionPreviewLength = 100

// TruncateText shortens s to n runes followed by "..."
func TruncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// DispatchResult counts the outcomes of one pass
type DispatchResult struct {
	Sent       int `json:"sent"`
	Suppressed int `json:"suppressed"`
	Errored    int `json:"errored"`
}

// SuppressReason explains why shouldSend said no
type SuppressReason string

const (
	SuppressNone             SuppressReason = ""
	SuppressChatDisabled     SuppressReason = "chat_notifications_disabled"
	SuppressAlreadySent      SuppressReason = "already_sent_for_message"
	SuppressWithinRateWindow SuppressReason = "sent_for_event_within_window"
)

// NotificationRepository reads due notifications and closes them
type NotificationRepository interface {
	// ListPending returns unsent chat notifications scheduled at or before now
	ListPending(ctx context.Context, now time.Time) ([]*PendingNotification, error)

	// HasSentForMessage reports whether an email already went out for this user and message
	HasSentForMessage(ctx context.Context, userID, chatMessageID string) (bool, error)

	// HasSentForEventSince reports whether an email went out for this user and event after since
	HasSentForEventSince(ctx context.Context, userID, eventID string, since time.Time) (bool, error)

	// MarkSent closes a notification as sent. Only rows still unsent are touched.
	MarkSent(ctx context.Context, id string, at time.Time) error

	// MarkSuppressed closes a notification without sending. Only rows still unsent are touched.
	MarkSuppressed(ctx context.Context, id string, at time.Time) error
}

// NotificationPreferenceRepository reads saved preferences
type NotificationPreferenceRepository interface {
	// Get returns ErrNotFound when the user has no saved preferences
	Get(ctx context.Context, userID string) (*NotificationPreference, error)
}

// DispatchService runs dispatch passes
type DispatchService interface {
	Run(ctx context.Context) (*DispatchResult, error)
	ShouldSend(ctx context.Context, n *PendingNotification, pref *NotificationPreference, now time.Time) (bool, SuppressReason, error)
}
