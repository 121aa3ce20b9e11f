package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opencensus.io/trace"
)

func TestTracingMiddleware(t *testing.T) {
	t.Run("span is available to handlers", func(t *testing.T) {
		var span *trace.Span
		handler := TracingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			span = trace.FromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/content-stats", nil)
		req.Header.Set("X-Request-Id", "req-1")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.NotNil(t, span)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("error status passes through", func(t *testing.T) {
		handler := TracingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/site-statistics", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestStatusRecorder(t *testing.T) {
	_, span := trace.StartSpan(context.Background(), "test-span")
	defer span.End()

	recorder := httptest.NewRecorder()
	w := &statusRecorder{ResponseWriter: recorder, span: span}

	w.WriteHeader(http.StatusBadGateway)
	_, _ = w.Write([]byte("x"))

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.Equal(t, "x", recorder.Body.String())
}
