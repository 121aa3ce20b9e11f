package http

import (
	"net/http"

	"github.com/taylorconnect/hub/internal/domain"
	"github.com/taylorconnect/hub/pkg/logger"
)

// AccountHandler serves the verification code and password reset flows
type AccountHandler struct {
	service domain.AccountService
	logger  logger.Logger
}

func NewAccountHandler(service domain.AccountService, logger logger.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		logger:  logger,
	}
}

func (h *AccountHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/send-verification-email", h.handleSendVerification)
	mux.HandleFunc("/api/send-password-reset", h.handleSendPasswordReset)
	mux.HandleFunc("/api/verify-reset-code", h.handleVerifyResetCode)
	mux.HandleFunc("/api/update-password", h.handleUpdatePassword)
}

func (h *AccountHandler) handleSendVerification(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req domain.SendVerificationRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err, "Failed to send verification email")
		return
	}

	code, err := h.service.SendVerificationCode(r.Context(), req.Email, req.Code)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to send verification email")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"code": code}, "Verification code sent successfully")
}

func (h *AccountHandler) handleSendPasswordReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req domain.PasswordResetRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err, "Failed to generate reset code. Please try again.")
		return
	}

	if err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeServiceError(w, h.logger, err, "Failed to generate reset code. Please try again.")
		return
	}

	writeSuccess(w, http.StatusOK, nil, "Password reset code sent successfully")
}

func (h *AccountHandler) handleVerifyResetCode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req domain.VerifyResetCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, h.logger, err, "Internal server error")
		return
	}

	if err := h.service.VerifyResetCode(r.Context(), req.Email, req.Code); err != nil {
		writeServiceError(w, h.logger, err, "Internal server error")
		return
	}

	writeSuccess(w, http.StatusOK, nil, "Reset code verified successfully")
}

func (h *AccountHandler) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req domain.UpdatePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdatePassword(r.Context(), req); err != nil {
		writeServiceError(w, h.logger, err, "Failed to update password. Please try again.")
		return
	}

	writeSuccess(w, http.StatusOK, nil, "Password updated successfully!")
}
