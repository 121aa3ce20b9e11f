package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taylorconnect/hub/internal/domain"
	"github.com/taylorconnect/hub/internal/domain/mocks"
	"github.com/taylorconnect/hub/pkg/logger"
	pkgmocks "github.com/taylorconnect/hub/pkg/mocks"
)

type dispatchFixture struct {
	notifications *mocks.MockNotificationRepository
	preferences   *mocks.MockNotificationPreferenceRepository
	messaging     *mocks.MockMessagingService
	claimer       *pkgmocks.MockClaimer
	service       *DispatchService
	now           time.Time
	sleeps        []time.Duration
}

func newDispatchFixture(t *testing.T, ctrl *gomock.Controller, batchSize int) *dispatchFixture {
	f := &dispatchFixture{
		notifications: mocks.NewMockNotificationRepository(ctrl),
		preferences:   mocks.NewMockNotificationPreferenceRepository(ctrl),
		messaging:     mocks.NewMockMessagingService(ctrl),
		claimer:       pkgmocks.NewMockClaimer(ctrl),
		now:           time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	f.service = NewDispatchService(DispatchServiceConfig{
		Notifications:     f.notifications,
		Preferences:       f.preferences,
		Messaging:         f.messaging,
		Claimer:           f.claimer,
		BatchSize:         batchSize,
		SendDelay:         600 * time.Millisecond,
		BatchDelay:        time.Second,
		SuppressionWindow: 24 * time.Hour,
		Logger:            logger.NewTestLogger(t),
	})
	f.service.now = func() time.Time { return f.now }
	f.service.sleep = func(ctx context.Context, d time.Duration) error {
		f.sleeps = append(f.sleeps, d)
		return ctx.Err()
	}
	return f
}

func pendingNotification(id string) *domain.PendingNotification {
	return &domain.PendingNotification{
		Notification: domain.Notification{
			ID:               id,
			UserID:           "u-" + id,
			EventID:          "e1",
			ChatMessageID:    "m-" + id,
			NotificationType: domain.NotificationTypeChatMessage,
			Status:           domain.NotificationStatusPending,
		},
		RecipientEmail:     id + "@example.com",
		RecipientName:      "Sam",
		EventTitle:         "Park cleanup",
		Message:            "See you there",
		SenderOrganization: "Green Org",
	}
}

func TestDispatchService_Run_SendsAndMarks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newDispatchFixture(t, ctrl, 2)
	ctx := context.Background()

	pending := []*domain.PendingNotification{pendingNotification("n1"), pendingNotification("n2"), pendingNotification("n3")}
	f.notifications.EXPECT().ListPending(gomock.Any(), f.now).Return(pending, nil)

	for _, n := range pending {
		f.claimer.EXPECT().Claim(gomock.Any(), "notification", n.ID).Return(true)
		f.preferences.EXPECT().Get(gomock.Any(), n.UserID).Return(nil, &domain.ErrNotFound{})
		f.notifications.EXPECT().HasSentForMessage(gomock.Any(), n.UserID, n.ChatMessageID).Return(false, nil)
		f.notifications.EXPECT().MarkSent(gomock.Any(), n.ID, f.now).Return(nil)
	}
	f.messaging.EXPECT().SendChatNotification(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, email domain.ChatNotificationEmail) error {
			assert.Equal(t, "Green Org", email.SenderLabel)
			assert.Equal(t, "e1", email.EventID)
			return nil
		}).Times(3)

	result, err := f.service.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, &domain.DispatchResult{Sent: 3}, result)

	// a send delay after n1, n2 then the batch pause before n3
	assert.Equal(t, []time.Duration{600 * time.Millisecond, 600 * time.Millisecond, time.Second}, f.sleeps)
}

// memoryNotifications keeps notification state between dispatch passes
type memoryNotifications struct {
	rows []*domain.PendingNotification
}

func (m *memoryNotifications) ListPending(_ context.Context, now time.Time) ([]*domain.PendingNotification, error) {
	var out []*domain.PendingNotification
	for _, n := range m.rows {
		if n.Status == domain.NotificationStatusPending && !n.ScheduledFor.After(now) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memoryNotifications) HasSentForMessage(_ context.Context, userID, chatMessageID string) (bool, error) {
	for _, n := range m.rows {
		if n.UserID == userID && n.ChatMessageID == chatMessageID && n.EmailSent {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryNotifications) HasSentForEventSince(_ context.Context, userID, eventID string, since time.Time) (bool, error) {
	for _, n := range m.rows {
		if n.UserID == userID && n.EventID == eventID && n.SentAt != nil && n.SentAt.After(since) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryNotifications) close(id string, at time.Time, status domain.NotificationStatus) {
	for _, n := range m.rows {
		if n.ID == id && n.Status == domain.NotificationStatusPending {
			n.Status = status
			n.EmailSent = status == domain.NotificationStatusSent
			sentAt := at
			n.SentAt = &sentAt
		}
	}
}

func (m *memoryNotifications) MarkSent(_ context.Context, id string, at time.Time) error {
	m.close(id, at, domain.NotificationStatusSent)
	return nil
}

func (m *memoryNotifications) MarkSuppressed(_ context.Context, id string, at time.Time) error {
	m.close(id, at, domain.NotificationStatusSuppressed)
	return nil
}

func TestDispatchService_Run_SecondPassSendsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	store := &memoryNotifications{rows: []*domain.PendingNotification{
		pendingNotification("n1"),
		pendingNotification("n2"),
	}}
	preferences := mocks.NewMockNotificationPreferenceRepository(ctrl)
	preferences.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, &domain.ErrNotFound{}).AnyTimes()
	messaging := mocks.NewMockMessagingService(ctrl)

	service := NewDispatchService(DispatchServiceConfig{
		Notifications: store,
		Preferences:   preferences,
		Messaging:     messaging,
		BatchSize:     10,
		Logger:        logger.NewTestLogger(t),
	})
	service.now = func() time.Time { return now }
	service.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	messaging.EXPECT().SendChatNotification(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	first, err := service.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, &domain.DispatchResult{Sent: 2}, first)

	messaging.EXPECT().SendChatNotification(gomock.Any(), gomock.Any()).Times(0)
	second, err := service.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, &domain.DispatchResult{}, second)

	for _, n := range store.rows {
		assert.Equal(t, domain.NotificationStatusSent, n.Status, n.ID)
		assert.True(t, n.EmailSent, n.ID)
	}
}

func TestDispatchService_Run_SuppressedByPreference(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newDispatchFixture(t, ctrl, 5)

	n := pendingNotification("n1")
	f.notifications.EXPECT().ListPending(gomock.Any(), f.now).Return([]*domain.PendingNotification{n}, nil)
	f.claimer.EXPECT().Claim(gomock.Any(), "notification", "n1").Return(true)
	f.preferences.EXPECT().Get(gomock.Any(), n.UserID).Return(&domain.NotificationPreference{
		UserID: n.UserID, EmailFrequency: domain.EmailFrequencyImmediate, ChatNotifications: false,
	}, nil)
	f.notifications.EXPECT().MarkSuppressed(gomock.Any(), "n1", f.now).Return(nil)
	f.messaging.EXPECT().SendChatNotification(gomock.Any(), gomock.Any()).Times(0)

	result, err := f.service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.DispatchResult{Suppressed: 1}, result)
	assert.Empty(t, f.sleeps)
}

func TestDispatchService_Run_FailedSendStaysPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newDispatchFixture(t, ctrl, 5)

	n := pendingNotification("n1")
	f.notifications.EXPECT().ListPending(gomock.Any(), f.now).Return([]*domain.PendingNotification{n}, nil)
	f.claimer.EXPECT().Claim(gomock.Any(), "notification", "n1").Return(true)
	f.preferences.EXPECT().Get(gomock.Any(), n.UserID).Return(domain.DefaultNotificationPreference(n.UserID), nil)
	f.notifications.EXPECT().HasSentForMessage(gomock.Any(), n.UserID, n.ChatMessageID).Return(false, nil)
	f.messaging.EXPECT().SendChatNotification(gomock.Any(), gomock.Any()).Return(&domain.ErrEmailDelivery{Err: errors.New("503")})
	f.claimer.EXPECT().Release(gomock.Any(), "notification", "n1")
	f.notifications.EXPECT().MarkSent(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	f.notifications.EXPECT().MarkSuppressed(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	result, err := f.service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.DispatchResult{Errored: 1}, result)
}

func TestDispatchService_Run_SkipsClaimedNotifications(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newDispatchFixture(t, ctrl, 5)

	n := pendingNotification("n1")
	f.notifications.EXPECT().ListPending(gomock.Any(), f.now).Return([]*domain.PendingNotification{n}, nil)
	f.claimer.EXPECT().Claim(gomock.Any(), "notification", "n1").Return(false)

	result, err := f.service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.DispatchResult{}, result)
}

func TestDispatchService_Run_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newDispatchFixture(t, ctrl, 5)

	f.notifications.EXPECT().ListPending(gomock.Any(), f.now).Return(nil, errors.New("connection refused"))

	result, err := f.service.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestDispatchService_Run_PreferenceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newDispatchFixture(t, ctrl, 5)

	n := pendingNotification("n1")
	f.notifications.EXPECT().ListPending(gomock.Any(), f.now).Return([]*domain.PendingNotification{n}, nil)
	f.claimer.EXPECT().Claim(gomock.Any(), "notification", "n1").Return(true)
	f.preferences.EXPECT().Get(gomock.Any(), n.UserID).Return(nil, errors.New("timeout"))
	f.claimer.EXPECT().Release(gomock.Any(), "notification", "n1")

	result, err := f.service.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Errored)
}

func TestDispatchService_ShouldSend(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	since := now.Add(-24 * time.Hour)

	tests := []struct {
		name       string
		pref       *domain.NotificationPreference
		sentForMsg bool
		sentRecent *bool
		want       bool
		reason     domain.SuppressReason
	}{
		{
			name:   "chat notifications disabled",
			pref:   &domain.NotificationPreference{EmailFrequency: domain.EmailFrequencyImmediate},
			want:   false,
			reason: domain.SuppressChatDisabled,
		},
		{
			name:       "already sent for message",
			pref:       &domain.NotificationPreference{EmailFrequency: domain.EmailFrequencyImmediate, ChatNotifications: true},
			sentForMsg: true,
			want:       false,
			reason:     domain.SuppressAlreadySent,
		},
		{
			name: "immediate",
			pref: &domain.NotificationPreference{EmailFrequency: domain.EmailFrequencyImmediate, ChatNotifications: true},
			want: true,
		},
		{
			name:       "daily with recent email",
			pref:       &domain.NotificationPreference{EmailFrequency: domain.EmailFrequencyDaily, ChatNotifications: true},
			sentRecent: boolPtr(true),
			want:       false,
			reason:     domain.SuppressWithinRateWindow,
		},
		{
			name:       "weekly without recent email",
			pref:       &domain.NotificationPreference{EmailFrequency: domain.EmailFrequencyWeekly, ChatNotifications: true},
			sentRecent: boolPtr(false),
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			f := newDispatchFixture(t, ctrl, 5)
			n := pendingNotification("n1")
			ctx := context.Background()

			if tt.pref.ChatNotifications {
				f.notifications.EXPECT().HasSentForMessage(ctx, n.UserID, n.ChatMessageID).Return(tt.sentForMsg, nil)
			}
			if tt.sentRecent != nil {
				f.notifications.EXPECT().HasSentForEventSince(ctx, n.UserID, n.EventID, since).Return(*tt.sentRecent, nil)
			}

			send, reason, err := f.service.ShouldSend(ctx, n, tt.pref, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, send)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestDispatchService_ShouldSend_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newDispatchFixture(t, ctrl, 5)
	n := pendingNotification("n1")

	f.notifications.EXPECT().HasSentForMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, fmt.Errorf("boom"))

	_, _, err := f.service.ShouldSend(context.Background(), n, domain.DefaultNotificationPreference("u"), time.Now())
	assert.Error(t, err)
}

func boolPtr(b bool) *bool { return &b }
