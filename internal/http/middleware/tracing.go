package middleware

import (
	"net/http"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"
)

// TracingMiddleware starts a server span per request and tags it with the route
// and the final status
func TracingMiddleware(next http.Handler) http.Handler {
	annotated := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		span := trace.FromContext(r.Context())
		if span == nil {
			next.ServeHTTP(w, r)
			return
		}

		span.AddAttributes(
			trace.StringAttribute("http.method", r.Method),
			trace.StringAttribute("http.route", r.URL.Path),
		)
		if requestID := r.Header.Get("X-Request-Id"); requestID != "" {
			span.AddAttributes(trace.StringAttribute("http.request_id", requestID))
		}

		next.ServeHTTP(&statusRecorder{ResponseWriter: w, span: span}, r)
	})

	return &ochttp.Handler{
		Handler: annotated,
		FormatSpanName: func(r *http.Request) string {
			return r.Method + " " + r.URL.Path
		},
		IsPublicEndpoint: true,
	}
}

// statusRecorder copies the response status onto the span
type statusRecorder struct {
	http.ResponseWriter
	span *trace.Span
}

func (s *statusRecorder) WriteHeader(code int) {
	s.span.AddAttributes(trace.Int64Attribute("http.status_code", int64(code)))
	if code >= http.StatusInternalServerError {
		s.span.SetStatus(trace.Status{Code: trace.StatusCodeInternal, Message: http.StatusText(code)})
	}
	s.ResponseWriter.WriteHeader(code)
}
