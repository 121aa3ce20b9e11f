package tracing

import (
	"context"
	"sync"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

// Dispatch outcomes
const (
	OutcomeSent       = "sent"
	OutcomeSuppressed = "suppressed"
	OutcomeErrored    = "errored"
)

var (
	KeyOutcome = tag.MustNewKey("outcome")

	// DispatchNotifications counts notifications handled by a dispatch pass
	DispatchNotifications = stats.Int64("dispatch/notifications", "Notifications handled by the dispatcher", stats.UnitDimensionless)

	// ImpactFieldErrors counts statistic fields that could not be computed
	ImpactFieldErrors = stats.Int64("statistics/field_errors", "Statistic fields that failed to compute", stats.UnitDimensionless)

	KeyStatType = tag.MustNewKey("stat_type")

	DispatchNotificationsView = &view.View{
		Name:        "dispatch/notifications",
		Description: "Notifications handled by the dispatcher, by outcome",
		Measure:     DispatchNotifications,
		TagKeys:     []tag.Key{KeyOutcome},
		Aggregation: view.Count(),
	}

	ImpactFieldErrorsView = &view.View{
		Name:        "statistics/field_errors",
		Description: "Statistic fields that failed to compute, by stat type",
		Measure:     ImpactFieldErrors,
		TagKeys:     []tag.Key{KeyStatType},
		Aggregation: view.Count(),
	}
)

var registerOnce sync.Once

// RegisterAppViews registers the application views once per process
func RegisterAppViews() error {
	var err error
	registerOnce.Do(func() {
		err = view.Register(DispatchNotificationsView, ImpactFieldErrorsView)
	})
	return err
}

// RecordDispatchOutcome records one notification outcome. Recording without a
// registered view is dropped by OpenCensus.
func RecordDispatchOutcome(ctx context.Context, outcome string) {
	_ = stats.RecordWithTags(ctx, []tag.Mutator{tag.Upsert(KeyOutcome, outcome)}, DispatchNotifications.M(1))
}

// RecordImpactFieldError records a failed statistic computation
func RecordImpactFieldError(ctx context.Context, statType string) {
	_ = stats.RecordWithTags(ctx, []tag.Mutator{tag.Upsert(KeyStatType, statType)}, ImpactFieldErrors.M(1))
}
