package mailer

import (
	"context"
	"time"

	"github.com/taylorconnect/hub/pkg/emailerror"
	"github.com/taylorconnect/hub/pkg/logger"
	"github.com/taylorconnect/hub/pkg/retry"
)

// RetryingMailer classifies every send failure and repeats the retryable ones
// under the shared retry policy.
type RetryingMailer struct {
	next       Mailer
	policy     retry.Policy
	classifier *emailerror.Classifier
	logger     logger.Logger
}

func NewRetryingMailer(next Mailer, policy retry.Policy, log logger.Logger) *RetryingMailer {
	m := &RetryingMailer{
		next:       next,
		classifier: emailerror.NewClassifier(),
		logger:     log,
	}
	policy.Retryable = emailerror.IsRetryable
	policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		fields := map[string]interface{}{
			"attempt": attempt,
			"delay":   delay.String(),
			"error":   err.Error(),
		}
		if classified, ok := err.(*emailerror.ClassifiedError); ok {
			for k, v := range classified.LogFields() {
				fields[k] = v
			}
		}
		m.logger.WithFields(fields).Warn("Email send failed, retrying")
	}
	m.policy = policy
	return m
}

func (m *RetryingMailer) Provider() string {
	return m.next.Provider()
}

// Send returns a *emailerror.ClassifiedError (possibly wrapped) on failure.
// Failures the provider marked permanent, such as a message that cannot be built,
// are attempted once.
func (m *RetryingMailer) Send(ctx context.Context, msg Message) error {
	return m.policy.Do(ctx, func(ctx context.Context) error {
		err := m.next.Send(ctx, msg)
		if err == nil {
			return nil
		}
		cause, permanent := retry.PermanentCause(err)
		classified := m.classifier.Classify(cause, m.next.Provider())
		if permanent {
			classified.Retryable = false
		}
		return classified
	})
}
