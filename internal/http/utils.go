package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/taylorconnect/hub/internal/domain"
	"github.com/taylorconnect/hub/pkg/logger"
)

// Response is the envelope every endpoint answers with
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// WriteJSONError writes {"success": false, "error": message} with the given status code
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, Response{Success: false, Error: message})
}

// writeJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, Response{Success: true, Data: data, Message: message})
}

func methodNotAllowed(w http.ResponseWriter) {
	WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// decodeJSON reads a JSON body into v. An empty body is an error.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return io.EOF
	}
	return json.NewDecoder(r.Body).Decode(v)
}

// writeServiceError maps a service error onto a status code. Unrecognised errors are
// logged and answered with fallback.
func writeServiceError(w http.ResponseWriter, log logger.Logger, err error, fallback string) {
	var validationErr domain.ValidationError
	var notFound *domain.ErrNotFound
	var rateLimited *domain.ErrRateLimited
	var delivery *domain.ErrEmailDelivery

	switch {
	case errors.As(err, &validationErr):
		WriteJSONError(w, validationErr.Message, http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidCode), errors.Is(err, domain.ErrCodeExpired):
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &notFound):
		WriteJSONError(w, notFound.Error(), http.StatusNotFound)
	case errors.As(err, &rateLimited):
		w.Header().Set("Retry-After", strconv.Itoa(rateLimited.RetryAfterSeconds))
		WriteJSONError(w, rateLimited.Error(), http.StatusTooManyRequests)
	case errors.As(err, &delivery):
		log.WithField("error", err.Error()).Error("Email delivery failed")
		WriteJSONError(w, delivery.Error(), http.StatusBadGateway)
	default:
		log.WithField("error", err.Error()).Error(fmt.Sprintf("%s: %v", fallback, err))
		WriteJSONError(w, fallback, http.StatusInternalServerError)
	}
}
