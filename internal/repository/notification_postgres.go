package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/taylorconnect/hub/internal/domain"
)

// NotificationRepository implements domain.NotificationRepository using PostgreSQL
type NotificationRepository struct {
	systemDB *sql.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{
		systemDB: db,
	}
}

// ListPending returns unsent chat notifications due at now, joined with the
// recipient, event, message and posting organization
func (r *NotificationRepository) ListPending(ctx context.Context, now time.Time) ([]*domain.PendingNotification, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	query := psql.Select(
		"n.id", "n.user_id", "n.event_id", "n.chat_message_id", "n.notification_type",
		"n.scheduled_for", "n.status",
		"p.email", "COALESCE(p.full_name, '')",
		"COALESCE(e.title, '')", "COALESCE(e.description, '')",
		"COALESCE(cm.message, '')", "COALESCE(o.name, '')",
		"COALESCE(cm.user_id::text, '')", "COALESCE(cm.is_anonymous, FALSE)",
	).
		From("notifications n").
		Join("profiles p ON p.id = n.user_id").
		LeftJoin("events e ON e.id = n.event_id").
		LeftJoin("chat_messages cm ON cm.id = n.chat_message_id").
		LeftJoin("organizations o ON o.id = cm.organization_id").
		Where(sq.Eq{"n.sent_at": nil}).
		Where(sq.LtOrEq{"n.scheduled_for": now}).
		Where(sq.Eq{"n.notification_type": domain.NotificationTypeChatMessage}).
		OrderBy("n.scheduled_for", "n.id")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build pending notifications query: %w", err)
	}

	rows, err := r.systemDB.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending notifications: %w", err)
	}
	defer rows.Close()

	var pending []*domain.PendingNotification
	for rows.Next() {
		n := &domain.PendingNotification{}
		err := rows.Scan(
			&n.ID, &n.UserID, &n.EventID, &n.ChatMessageID, &n.NotificationType,
			&n.ScheduledFor, &n.Status,
			&n.RecipientEmail, &n.RecipientName,
			&n.EventTitle, &n.EventDescription,
			&n.Message, &n.SenderOrganization,
			&n.SenderUserID, &n.IsAnonymous,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		pending = append(pending, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pending, nil
}

// HasSentForMessage reports whether an email already went out for this user and message
func (r *NotificationRepository) HasSentForMessage(ctx context.Context, userID, chatMessageID string) (bool, error) {
	var exists bool
	err := r.systemDB.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM notifications
			WHERE user_id = $1 AND chat_message_id = $2 AND email_sent = TRUE
		)
	`, userID, chatMessageID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check sent notifications for message: %w", err)
	}
	return exists, nil
}

// HasSentForEventSince reports whether an email went out for this user and event at or after since
func (r *NotificationRepository) HasSentForEventSince(ctx context.Context, userID, eventID string, since time.Time) (bool, error) {
	var exists bool
	err := r.systemDB.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM notifications
			WHERE user_id = $1 AND event_id = $2 AND email_sent = TRUE AND sent_at >= $3
		)
	`, userID, eventID, since).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check sent notifications for event: %w", err)
	}
	return exists, nil
}

// MarkSent closes a notification as sent
func (r *NotificationRepository) MarkSent(ctx context.Context, id string, at time.Time) error {
	return r.close(ctx, id, at, domain.NotificationStatusSent)
}

// MarkSuppressed closes a notification without an email
func (r *NotificationRepository) MarkSuppressed(ctx context.Context, id string, at time.Time) error {
	return r.close(ctx, id, at, domain.NotificationStatusSuppressed)
}

// close is conditional on sent_at IS NULL so a row is closed at most once
func (r *NotificationRepository) close(ctx context.Context, id string, at time.Time, status domain.NotificationStatus) error {
	result, err := r.systemDB.ExecContext(ctx, `
		UPDATE notifications
		SET sent_at = $1, email_sent = $2, status = $3
		WHERE id = $4 AND sent_at IS NULL
	`, at, status == domain.NotificationStatusSent, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s %s: %w", id, status, err)
	}

	return requireAffected(result, &domain.ErrNotFound{Entity: "pending notification", ID: id})
}
