package tracing

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"contrib.go.opencensus.io/exporter/aws"
	"contrib.go.opencensus.io/exporter/jaeger"
	"contrib.go.opencensus.io/exporter/prometheus"
	"contrib.go.opencensus.io/exporter/stackdriver"
	"contrib.go.opencensus.io/exporter/zipkin"
	"contrib.go.opencensus.io/integrations/ocsql"
	datadog "github.com/DataDog/opencensus-go-exporter-datadog"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/taylorconnect/hub/config"
)

// InitTracing configures sampling, the trace exporter and the metrics exporters.
// It is a no-op when tracing is disabled.
func InitTracing(cfg *config.TracingConfig, environment string) error {
	if !cfg.Enabled {
		return nil
	}

	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(cfg.SamplingProbability),
	})

	if err := initTraceExporter(cfg, environment); err != nil {
		return err
	}

	if err := initMetricsExporters(cfg, environment); err != nil {
		return err
	}

	if err := view.Register(ochttp.DefaultServerViews...); err != nil {
		return fmt.Errorf("failed to register HTTP server views: %w", err)
	}

	log.Printf("OpenCensus initialized with trace exporter: %s, metrics exporters: %s",
		cfg.TraceExporter, cfg.MetricsExporter)
	return nil
}

func initTraceExporter(cfg *config.TracingConfig, environment string) error {
	var (
		exporter trace.Exporter
		err      error
	)

	switch cfg.TraceExporter {
	case "none", "":
		return nil
	case "jaeger":
		if cfg.JaegerEndpoint == "" {
			return fmt.Errorf("Jaeger endpoint is required for Jaeger exporter")
		}
		exporter, err = jaeger.NewExporter(jaeger.Options{
			CollectorEndpoint: cfg.JaegerEndpoint,
			ServiceName:       cfg.ServiceName,
			Process:           jaeger.Process{ServiceName: cfg.ServiceName},
		})
	case "zipkin":
		if cfg.ZipkinEndpoint == "" {
			return fmt.Errorf("Zipkin endpoint is required for Zipkin exporter")
		}
		exporter = zipkin.NewExporter(zipkinhttp.NewReporter(cfg.ZipkinEndpoint), nil)
	case "stackdriver":
		if cfg.StackdriverProjectID == "" {
			return fmt.Errorf("Stackdriver project ID is required for Stackdriver exporter")
		}
		exporter, err = stackdriver.NewExporter(stackdriver.Options{ProjectID: cfg.StackdriverProjectID})
	case "datadog":
		exporter, err = newDatadogExporter(cfg, environment)
	case "xray":
		if cfg.XRayRegion == "" {
			return fmt.Errorf("AWS region is required for X-Ray exporter")
		}
		exporter, err = aws.NewExporter(aws.WithRegion(cfg.XRayRegion), aws.WithVersion("latest"))
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	if err != nil {
		return fmt.Errorf("failed to create %s exporter: %w", cfg.TraceExporter, err)
	}

	trace.RegisterExporter(exporter)
	log.Printf("%s trace exporter initialized", cfg.TraceExporter)
	return nil
}

func newDatadogExporter(cfg *config.TracingConfig, environment string) (*datadog.Exporter, error) {
	agentAddr := cfg.DatadogAgentAddress
	if agentAddr == "" {
		agentAddr = cfg.AgentEndpoint
	}
	if agentAddr == "" {
		return nil, fmt.Errorf("Datadog agent address is required for Datadog exporter")
	}

	options := datadog.Options{
		Service:   cfg.ServiceName,
		TraceAddr: agentAddr,
		StatsAddr: agentAddr,
		Tags:      []string{"env:" + environment},
		OnError: func(err error) {
			log.Printf("Datadog exporter error: %v", err)
		},
	}
	if cfg.DatadogAPIKey != "" {
		options.GlobalTags = map[string]interface{}{"api_key": cfg.DatadogAPIKey}
	}

	return datadog.NewExporter(options)
}

// initMetricsExporters accepts a comma-separated list of exporters
func initMetricsExporters(cfg *config.TracingConfig, environment string) error {
	if cfg.MetricsExporter == "none" || cfg.MetricsExporter == "" {
		return nil
	}

	for _, name := range strings.Split(cfg.MetricsExporter, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		var err error
		switch name {
		case "prometheus":
			err = initPrometheusExporter(cfg)
		case "stackdriver":
			var se *stackdriver.Exporter
			if cfg.StackdriverProjectID == "" {
				err = fmt.Errorf("Stackdriver project ID is required for Stackdriver metrics exporter")
				break
			}
			se, err = stackdriver.NewExporter(stackdriver.Options{
				ProjectID:    cfg.StackdriverProjectID,
				MetricPrefix: cfg.ServiceName,
				OnError: func(err error) {
					log.Printf("Stackdriver metrics exporter error: %v", err)
				},
			})
			if err == nil {
				view.RegisterExporter(se)
			}
		case "datadog":
			var de *datadog.Exporter
			de, err = newDatadogExporter(cfg, environment)
			if err == nil {
				view.RegisterExporter(de)
			}
		default:
			return fmt.Errorf("unsupported metrics exporter: %s", name)
		}

		if err != nil {
			return fmt.Errorf("failed to initialize %s metrics exporter: %w", name, err)
		}
		log.Printf("Initialized %s metrics exporter", name)
	}

	if err := registerCustomViews(); err != nil {
		return fmt.Errorf("failed to register custom views: %w", err)
	}
	return nil
}

// registerCustomViews registers the database views and the application views
func registerCustomViews() error {
	if err := view.Register(ocsql.DefaultViews...); err != nil {
		return fmt.Errorf("failed to register database views: %w", err)
	}
	return RegisterAppViews()
}

func initPrometheusExporter(cfg *config.TracingConfig) error {
	pe, err := prometheus.NewExporter(prometheus.Options{
		Namespace: strings.ReplaceAll(cfg.ServiceName, "-", "_"),
		OnError: func(err error) {
			log.Printf("Prometheus exporter error: %v", err)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	view.RegisterExporter(pe)

	if cfg.PrometheusPort <= 0 {
		return nil
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", pe)

		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.PrometheusPort),
			Handler: mux,
		}

		log.Printf("Starting Prometheus metrics server on :%d", cfg.PrometheusPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Failed to start Prometheus metrics server: %v", err)
		}
	}()

	return nil
}

// GetHTTPOptions returns options for HTTP client tracing
func GetHTTPOptions() ochttp.Transport {
	return ochttp.Transport{
		FormatSpanName: func(req *http.Request) string {
			return fmt.Sprintf("%s %s", req.Method, req.URL.Path)
		},
	}
}

// StartSpan starts a new span with the given name and returns a context with the span
func StartSpan(ctx context.Context, name string) (context.Context, *trace.Span) {
	return trace.StartSpan(ctx, name)
}
