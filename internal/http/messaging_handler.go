package http

import (
	"net/http"
	"time"

	"github.com/taylorconnect/hub/internal/domain"
	"github.com/taylorconnect/hub/pkg/logger"
)

// MessagingHandler exposes the contact relay and signup confirmations
type MessagingHandler struct {
	service domain.MessagingService
	logger  logger.Logger
	now     func() time.Time
}

func NewMessagingHandler(service domain.MessagingService, logger logger.Logger) *MessagingHandler {
	return &MessagingHandler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

func (h *MessagingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/contact-form", h.handleContactForm)
	mux.HandleFunc("/api/notify-signup", h.handleNotifySignup)
}

func (h *MessagingHandler) handleContactForm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req domain.ContactRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.RelayContact(r.Context(), req, h.now()); err != nil {
		writeServiceError(w, h.logger, err, "Internal server error")
		return
	}

	writeSuccess(w, http.StatusOK, nil, "Contact form submitted successfully")
}

func (h *MessagingHandler) handleNotifySignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req domain.NotifySignupRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, "Invalid request data", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err, "Invalid request data")
		return
	}

	result := h.service.NotifySignups(r.Context(), req.Signups)

	if result.Failed > 0 {
		h.logger.WithFields(map[string]interface{}{
			"sent":   result.Sent,
			"failed": result.Failed,
		}).Warn("Some signup confirmations failed to send")
		writeJSON(w, http.StatusMultiStatus, Response{
			Success: false,
			Message: "Partial success",
			Data:    result,
		})
		return
	}

	writeSuccess(w, http.StatusOK, result, "All emails sent successfully")
}
