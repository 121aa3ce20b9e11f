package http

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/taylorconnect/hub/internal/domain"
	"github.com/taylorconnect/hub/internal/domain/mocks"
	"github.com/taylorconnect/hub/pkg/logger"
)

func setupMessagingHandlerTest(t *testing.T) (*mocks.MockMessagingService, *MessagingHandler, *http.ServeMux) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := mocks.NewMockMessagingService(ctrl)
	handler := NewMessagingHandler(mockService, logger.NewTestLogger(t))

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mockService, handler, mux
}

func TestMessagingHandler_ContactForm(t *testing.T) {
	submittedAt := time.Date(2025, 5, 4, 15, 30, 0, 0, time.UTC)

	t.Run("relayed", func(t *testing.T) {
		mockService, handler, mux := setupMessagingHandlerTest(t)
		handler.now = func() time.Time { return submittedAt }

		mockService.EXPECT().
			RelayContact(gomock.Any(), domain.ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "Hi"}, submittedAt).
			Return(nil)

		body := `{"name":"Ada","email":"ada@example.com","message":"Hi"}`
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/contact-form", bytes.NewBufferString(body)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"message":"Contact form submitted successfully"}`, w.Body.String())
	})

	t.Run("missing fields", func(t *testing.T) {
		mockService, _, mux := setupMessagingHandlerTest(t)
		mockService.EXPECT().
			RelayContact(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(domain.NewValidationError("Missing required fields: name, email, message"))

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/contact-form", bytes.NewBufferString(`{"name":"Ada"}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing required fields: name, email, message", decodeResponse(t, w)["error"])
	})

	t.Run("provider failure is a bad gateway", func(t *testing.T) {
		mockService, _, mux := setupMessagingHandlerTest(t)
		mockService.EXPECT().
			RelayContact(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&domain.ErrEmailDelivery{Err: errors.New("domain not verified")})

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/contact-form", bytes.NewBufferString(`{"name":"Ada","email":"ada@example.com","message":"Hi"}`)))

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "domain not verified", decodeResponse(t, w)["error"])
	})

	t.Run("rate limited", func(t *testing.T) {
		mockService, _, mux := setupMessagingHandlerTest(t)
		mockService.EXPECT().
			RelayContact(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&domain.ErrRateLimited{RetryAfterSeconds: 60})

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/contact-form", bytes.NewBufferString(`{"name":"Ada","email":"ada@example.com","message":"Hi"}`)))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
	})

	t.Run("method not allowed", func(t *testing.T) {
		_, _, mux := setupMessagingHandlerTest(t)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/contact-form", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestMessagingHandler_NotifySignup(t *testing.T) {
	body := `{"signups":[{"email":"a@example.com","eventName":"Food Drive"},{"email":"b@example.com","eventName":"Food Drive"}]}`

	t.Run("all sent", func(t *testing.T) {
		mockService, _, mux := setupMessagingHandlerTest(t)
		mockService.EXPECT().
			NotifySignups(gomock.Any(), []domain.Signup{
				{Email: "a@example.com", EventName: "Food Drive"},
				{Email: "b@example.com", EventName: "Food Drive"},
			}).
			Return(domain.SignupNotifyResult{Sent: 2})

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/notify-signup", bytes.NewBufferString(body)))

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "All emails sent successfully", resp["message"])
		assert.Equal(t, float64(2), resp["data"].(map[string]interface{})["sent"])
	})

	t.Run("partial success", func(t *testing.T) {
		mockService, _, mux := setupMessagingHandlerTest(t)
		mockService.EXPECT().
			NotifySignups(gomock.Any(), gomock.Any()).
			Return(domain.SignupNotifyResult{Sent: 1, Failed: 1, Errors: []string{"b@example.com: bounced"}})

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/notify-signup", bytes.NewBufferString(body)))

		assert.Equal(t, http.StatusMultiStatus, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, "Partial success", resp["message"])
		data := resp["data"].(map[string]interface{})
		assert.Equal(t, float64(1), data["failed"])
		assert.Equal(t, []interface{}{"b@example.com: bounced"}, data["errors"])
	})

	t.Run("invalid data", func(t *testing.T) {
		_, _, mux := setupMessagingHandlerTest(t)

		for _, payload := range []string{`{"signups":[]}`, `{"signups":[{"email":"a@example.com"}]}`, `not json`} {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/notify-signup", bytes.NewBufferString(payload)))

			assert.Equal(t, http.StatusBadRequest, w.Code, payload)
			assert.Equal(t, "Invalid request data", decodeResponse(t, w)["error"], payload)
		}
	})
}
