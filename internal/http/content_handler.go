package http

import (
	"net/http"

	"github.com/taylorconnect/hub/internal/domain"
	"github.com/taylorconnect/hub/internal/http/middleware"
	"github.com/taylorconnect/hub/pkg/logger"
)

type ContentHandler struct {
	service domain.ContentService
	admin   *middleware.AdminAuth
	logger  logger.Logger
}

func NewContentHandler(service domain.ContentService, admin *middleware.AdminAuth, logger logger.Logger) *ContentHandler {
	return &ContentHandler{
		service: service,
		admin:   admin,
		logger:  logger,
	}
}

func (h *ContentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/content", h.admin.RequireAdminForWrites(http.HandlerFunc(h.handleContent)))
}

func (h *ContentHandler) handleContent(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	case http.MethodPut:
		h.handleUpdate(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *ContentHandler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.ContentFilter{
		Page:         query.Get("page"),
		Section:      query.Get("section"),
		Keys:         domain.ParseKeys(query.Get("keys")),
		LanguageCode: query.Get("language_code"),
	}

	entries, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get content")
		return
	}
	if entries == nil {
		entries = []*domain.ContentEntry{}
	}

	writeSuccess(w, http.StatusOK, entries, "")
}

func (h *ContentHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateContentRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to create content")
		return
	}

	writeSuccess(w, http.StatusCreated, entry, "")
}

func (h *ContentHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateContentRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.service.Update(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update content")
		return
	}

	writeSuccess(w, http.StatusOK, entry, "")
}

func (h *ContentHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		WriteJSONError(w, "Missing content ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete content")
		return
	}

	writeSuccess(w, http.StatusOK, nil, "")
}
