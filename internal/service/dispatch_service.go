package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taylorconnect/hub/internal/domain"
	"github.com/taylorconnect/hub/pkg/dedup"
	"github.com/taylorconnect/hub/pkg/logger"
	"github.com/taylorconnect/hub/pkg/tracing"
)

const notificationClaimScope = "notification"

// Dispatch outcomes recorded as metrics
const (
	outcomeSent       = "sent"
	outcomeSuppressed = "suppressed"
	outcomeErrored    = "errored"
)

// DispatchService runs one pass over the due chat notifications
type DispatchService struct {
	notifications     domain.NotificationRepository
	preferences       domain.NotificationPreferenceRepository
	messaging         domain.MessagingService
	claimer           dedup.Claimer
	batchSize         int
	sendDelay         time.Duration
	batchDelay        time.Duration
	suppressionWindow time.Duration
	logger            logger.Logger
	tracer            tracing.Tracer
	now               func() time.Time
	sleep             func(ctx context.Context, d time.Duration) error
}

type DispatchServiceConfig struct {
	Notifications     domain.NotificationRepository
	Preferences       domain.NotificationPreferenceRepository
	Messaging         domain.MessagingService
	Claimer           dedup.Claimer
	BatchSize         int
	SendDelay         time.Duration
	BatchDelay        time.Duration
	SuppressionWindow time.Duration
	Logger            logger.Logger
	Tracer            tracing.Tracer
}

func NewDispatchService(cfg DispatchServiceConfig) *DispatchService {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = tracing.GetTracer()
	}
	claimer := cfg.Claimer
	if claimer == nil {
		claimer = dedup.NoopClaimer{}
	}
	batchSize := cfg.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}
	window := cfg.SuppressionWindow
	if window <= 0 {
		window = 24 * time.Hour
	}

	return &DispatchService{
		notifications:     cfg.Notifications,
		preferences:       cfg.Preferences,
		messaging:         cfg.Messaging,
		claimer:           claimer,
		batchSize:         batchSize,
		sendDelay:         cfg.SendDelay,
		batchDelay:        cfg.BatchDelay,
		suppressionWindow: window,
		logger:            cfg.Logger,
		tracer:            tracer,
		now:               time.Now,
		sleep:             sleepContext,
	}
}

var _ domain.DispatchService = (*DispatchService)(nil)

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Run processes every due notification in batches. A notification that fails to
// send stays pending for the next pass.
func (s *DispatchService) Run(ctx context.Context) (*domain.DispatchResult, error) {
	ctx, span := s.tracer.StartServiceSpan(ctx, "DispatchService", "Run")
	defer span.End()

	now := s.now().UTC()
	pending, err := s.notifications.ListPending(ctx, now)
	if err != nil {
		s.tracer.MarkSpanError(ctx, err)
		return nil, fmt.Errorf("failed to fetch pending notifications: %w", err)
	}

	s.logger.WithField("count", len(pending)).Info("Found pending notifications")
	s.tracer.AddAttribute(ctx, "notifications.pending", len(pending))

	result := &domain.DispatchResult{}
	for start := 0; start < len(pending); start += s.batchSize {
		end := start + s.batchSize
		if end > len(pending) {
			end = len(pending)
		}

		if start > 0 {
			if err := s.sleep(ctx, s.batchDelay); err != nil {
				return result, err
			}
		}

		for i, n := range pending[start:end] {
			attempted := s.process(ctx, n, now, result)
			if attempted && start+i < len(pending)-1 {
				if err := s.sleep(ctx, s.sendDelay); err != nil {
					return result, err
				}
			}
		}
	}

	s.tracer.AddAttribute(ctx, "notifications.sent", result.Sent)
	s.tracer.AddAttribute(ctx, "notifications.suppressed", result.Suppressed)
	s.tracer.AddAttribute(ctx, "notifications.errored", result.Errored)
	s.logger.WithFields(map[string]interface{}{
		"sent":       result.Sent,
		"suppressed": result.Suppressed,
		"errored":    result.Errored,
	}).Info("Dispatch pass complete")

	return result, nil
}

// process handles one notification and reports whether an email was attempted
func (s *DispatchService) process(ctx context.Context, n *domain.PendingNotification, now time.Time, result *domain.DispatchResult) bool {
	log := s.logger.WithFields(map[string]interface{}{
		"notification_id": n.ID,
		"user_id":         n.UserID,
	})

	if !s.claimer.Claim(ctx, notificationClaimScope, n.ID) {
		return false
	}

	fail := func(msg string, err error) {
		log.WithField("error", err.Error()).Error(msg)
		s.claimer.Release(ctx, notificationClaimScope, n.ID)
		result.Errored++
		s.tracer.RecordDispatchOutcome(ctx, outcomeErrored)
	}

	pref, err := s.preferences.Get(ctx, n.UserID)
	if err != nil {
		var notFound *domain.ErrNotFound
		if !errors.As(err, &notFound) {
			fail("Failed to load notification preferences", err)
			return false
		}
		pref = domain.DefaultNotificationPreference(n.UserID)
	}

	send, reason, err := s.ShouldSend(ctx, n, pref, now)
	if err != nil {
		fail("Failed to evaluate notification", err)
		return false
	}

	if !send {
		if err := s.notifications.MarkSuppressed(ctx, n.ID, now); err != nil {
			fail("Failed to mark notification suppressed", err)
			return false
		}
		log.WithField("reason", string(reason)).Info("Notification suppressed")
		result.Suppressed++
		s.tracer.RecordDispatchOutcome(ctx, outcomeSuppressed)
		return false
	}

	err = s.messaging.SendChatNotification(ctx, domain.ChatNotificationEmail{
		To:               n.RecipientEmail,
		RecipientName:    n.RecipientName,
		EventID:          n.EventID,
		EventTitle:       n.EventTitle,
		EventDescription: n.EventDescription,
		Message:          n.Message,
		SenderLabel:      n.SenderLabel(),
	})
	if err != nil {
		fail("Failed to send notification email", err)
		return true
	}

	// Keep the claim: the email is already out.
	if err := s.notifications.MarkSent(ctx, n.ID, s.now().UTC()); err != nil {
		log.WithField("error", err.Error()).Error("Email sent but notification could not be marked sent")
		result.Errored++
		s.tracer.RecordDispatchOutcome(ctx, outcomeErrored)
		return true
	}

	log.WithField("email", n.RecipientEmail).Info("Notification sent")
	result.Sent++
	s.tracer.RecordDispatchOutcome(ctx, outcomeSent)
	return true
}

// ShouldSend applies the recipient's preferences and the duplicate guards
func (s *DispatchService) ShouldSend(ctx context.Context, n *domain.PendingNotification, pref *domain.NotificationPreference, now time.Time) (bool, domain.SuppressReason, error) {
	if !pref.ChatNotifications {
		return false, domain.SuppressChatDisabled, nil
	}

	sent, err := s.notifications.HasSentForMessage(ctx, n.UserID, n.ChatMessageID)
	if err != nil {
		return false, domain.SuppressNone, err
	}
	if sent {
		return false, domain.SuppressAlreadySent, nil
	}

	if pref.EmailFrequency == domain.EmailFrequencyImmediate || pref.EmailFrequency == "" {
		return true, domain.SuppressNone, nil
	}

	sent, err = s.notifications.HasSentForEventSince(ctx, n.UserID, n.EventID, now.Add(-s.suppressionWindow))
	if err != nil {
		return false, domain.SuppressNone, err
	}
	if sent {
		return false, domain.SuppressWithinRateWindow, nil
	}

	return true, domain.SuppressNone, nil
}
