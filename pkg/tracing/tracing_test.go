package tracing

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/taylorconnect/hub/config"
)

func TestInitTracing_Disabled(t *testing.T) {
	cfg := &config.TracingConfig{Enabled: false, TraceExporter: "bogus"}
	assert.NoError(t, InitTracing(cfg, "test"))
}

func TestInitTracing_WithInvalidExporter(t *testing.T) {
	cfg := &config.TracingConfig{
		Enabled:             true,
		ServiceName:         "hub-api",
		SamplingProbability: 1.0,
		TraceExporter:       "invalid",
	}
	err := InitTracing(cfg, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported trace exporter: invalid")
}

func TestInitTracing_WithNoneExporters(t *testing.T) {
	cfg := &config.TracingConfig{
		Enabled:             true,
		ServiceName:         "hub-api",
		SamplingProbability: 0.5,
		TraceExporter:       "none",
		MetricsExporter:     "none",
	}
	assert.NoError(t, InitTracing(cfg, "test"))
}

func TestInitTraceExporter_MissingSettings(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.TracingConfig
		wantErr string
	}{
		{"jaeger", config.TracingConfig{TraceExporter: "jaeger"}, "Jaeger endpoint is required"},
		{"zipkin", config.TracingConfig{TraceExporter: "zipkin"}, "Zipkin endpoint is required"},
		{"stackdriver", config.TracingConfig{TraceExporter: "stackdriver"}, "Stackdriver project ID is required"},
		{"datadog", config.TracingConfig{TraceExporter: "datadog"}, "Datadog agent address is required"},
		{"xray", config.TracingConfig{TraceExporter: "xray"}, "AWS region is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := initTraceExporter(&cfg, "test")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInitTraceExporter_EmptyExporter(t *testing.T) {
	assert.NoError(t, initTraceExporter(&config.TracingConfig{}, "test"))
}

func TestInitMetricsExporters_WithInvalidExporter(t *testing.T) {
	cfg := &config.TracingConfig{ServiceName: "hub-api", MetricsExporter: "prometheus, graphite"}
	err := initMetricsExporters(cfg, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported metrics exporter: graphite")
}

func TestInitMetricsExporters_MissingSettings(t *testing.T) {
	cfg := &config.TracingConfig{ServiceName: "hub-api", MetricsExporter: "stackdriver"}
	err := initMetricsExporters(cfg, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Stackdriver project ID is required")

	cfg = &config.TracingConfig{ServiceName: "hub-api", MetricsExporter: "datadog"}
	err = initMetricsExporters(cfg, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Datadog agent address is required")
}

func TestInitMetricsExporters_Empty(t *testing.T) {
	assert.NoError(t, initMetricsExporters(&config.TracingConfig{}, "test"))
	assert.NoError(t, initMetricsExporters(&config.TracingConfig{MetricsExporter: "none"}, "test"))
}

func TestRegisterCustomViews(t *testing.T) {
	require.NoError(t, registerCustomViews())
	// registering twice is harmless
	require.NoError(t, registerCustomViews())

	assert.NotNil(t, view.Find("dispatch/notifications"))
	assert.NotNil(t, view.Find("statistics/field_errors"))
}

func TestRecordDispatchOutcome(t *testing.T) {
	require.NoError(t, RegisterAppViews())
	ctx := context.Background()

	before := countRows(t, DispatchNotificationsView.Name, OutcomeSuppressed)
	RecordDispatchOutcome(ctx, OutcomeSuppressed)
	RecordDispatchOutcome(ctx, OutcomeSuppressed)
	RecordDispatchOutcome(ctx, OutcomeSent)

	assert.Equal(t, before+2, countRows(t, DispatchNotificationsView.Name, OutcomeSuppressed))
}

func TestRecordImpactFieldError(t *testing.T) {
	require.NoError(t, RegisterAppViews())

	before := countRows(t, ImpactFieldErrorsView.Name, "hours_contributed")
	RecordImpactFieldError(context.Background(), "hours_contributed")
	assert.Equal(t, before+1, countRows(t, ImpactFieldErrorsView.Name, "hours_contributed"))
}

// countRows returns the count aggregated under the given tag value
func countRows(t *testing.T, viewName, tagValue string) int64 {
	t.Helper()
	rows, err := view.RetrieveData(viewName)
	require.NoError(t, err)
	for _, row := range rows {
		for _, tg := range row.Tags {
			if tg.Value == tagValue {
				if data, ok := row.Data.(*view.CountData); ok {
					return data.Value
				}
			}
		}
	}
	return 0
}

func TestGetHTTPOptions(t *testing.T) {
	opts := GetHTTPOptions()
	require.NotNil(t, opts.FormatSpanName)

	req, err := http.NewRequest(http.MethodGet, "https://api.resend.com/emails?x=1", nil)
	require.NoError(t, err)
	assert.Equal(t, "GET /emails", opts.FormatSpanName(req))
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "dispatch")
	defer span.End()

	assert.NotNil(t, span)
	assert.Equal(t, span, trace.FromContext(ctx))
}

func TestGetAndSetTracer(t *testing.T) {
	original := GetTracer()
	defer SetTracer(original)

	assert.IsType(t, &DefaultTracer{}, original)

	custom := &DefaultTracer{}
	SetTracer(custom)
	assert.Same(t, custom, GetTracer())
}

func TestDefaultTracer(t *testing.T) {
	tracer := NewTracer()
	ctx := context.Background()

	spanCtx, span := tracer.StartServiceSpan(ctx, "DispatchService", "Run")
	require.NotNil(t, span)
	assert.NotPanics(t, func() {
		tracer.AddAttribute(spanCtx, "batch_size", 5)
		tracer.MarkSpanError(spanCtx, errors.New("boom"))
		tracer.EndSpan(span, nil)
	})

	require.NoError(t, RegisterAppViews())
	assert.NotPanics(t, func() {
		tracer.RecordDispatchOutcome(ctx, OutcomeSent)
		tracer.RecordImpactFieldError(ctx, "hours_contributed")
	})
}
