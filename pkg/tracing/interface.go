package tracing

import (
	"context"

	"go.opencensus.io/trace"
)

//go:generate mockgen -destination=../mocks/mock_tracer.go -package=mocks github.com/taylorconnect/hub/pkg/tracing Tracer

// Tracer is what services use for spans and application measures. Services take
// it through their config so tests can assert on it.
type Tracer interface {
	StartServiceSpan(ctx context.Context, serviceName, methodName string) (context.Context, *trace.Span)
	EndSpan(span *trace.Span, err error)
	AddAttribute(ctx context.Context, key string, value interface{})
	MarkSpanError(ctx context.Context, err error)

	// RecordDispatchOutcome counts one notification handled by a dispatch pass
	RecordDispatchOutcome(ctx context.Context, outcome string)
	// RecordImpactFieldError counts one statistic that failed to compute
	RecordImpactFieldError(ctx context.Context, statType string)
}

type DefaultTracer struct{}

func NewTracer() Tracer {
	return &DefaultTracer{}
}

func (t *DefaultTracer) StartServiceSpan(ctx context.Context, serviceName, methodName string) (context.Context, *trace.Span) {
	return StartServiceSpan(ctx, serviceName, methodName)
}

func (t *DefaultTracer) EndSpan(span *trace.Span, err error) {
	EndSpan(span, err)
}

func (t *DefaultTracer) AddAttribute(ctx context.Context, key string, value interface{}) {
	AddAttribute(ctx, key, value)
}

func (t *DefaultTracer) MarkSpanError(ctx context.Context, err error) {
	MarkSpanError(ctx, err)
}

func (t *DefaultTracer) RecordDispatchOutcome(ctx context.Context, outcome string) {
	RecordDispatchOutcome(ctx, outcome)
}

func (t *DefaultTracer) RecordImpactFieldError(ctx context.Context, statType string) {
	RecordImpactFieldError(ctx, statType)
}

var globalTracer Tracer = NewTracer()

// GetTracer returns the process tracer used when a service is built without one
func GetTracer() Tracer {
	return globalTracer
}

func SetTracer(tracer Tracer) {
	globalTracer = tracer
}
