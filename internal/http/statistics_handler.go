package http

import (
	"net/http"

	"github.com/taylorconnect/hub/internal/domain"
	"github.com/taylorconnect/hub/internal/http/middleware"
	"github.com/taylorconnect/hub/pkg/logger"
)

// StatisticsHandler serves the public impact numbers and the admin statistics routes
type StatisticsHandler struct {
	service domain.StatisticsService
	admin   *middleware.AdminAuth
	logger  logger.Logger
}

func NewStatisticsHandler(service domain.StatisticsService, admin *middleware.AdminAuth, logger logger.Logger) *StatisticsHandler {
	return &StatisticsHandler{
		service: service,
		admin:   admin,
		logger:  logger,
	}
}

func (h *StatisticsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/content-stats", h.handleContentStats)
	mux.Handle("/api/statistics", h.admin.RequireAdminForWrites(http.HandlerFunc(h.handleStatistics)))
	mux.Handle("/api/site-statistics", h.admin.RequireAdminForWrites(http.HandlerFunc(h.handleSiteStatistics)))
}

func (h *StatisticsHandler) handleContentStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	stats, err := h.service.ContentStats(r.Context())
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to load content stats")
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   err.Error(),
			Data:    stats,
		})
		return
	}

	writeSuccess(w, http.StatusOK, stats, "")
}

func (h *StatisticsHandler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		values, err := h.service.RecordedAndLive(r.Context())
		resp := Response{Success: true, Data: values}
		if err != nil {
			resp.Error = err.Error()
		}
		writeJSON(w, http.StatusOK, resp)

	case http.MethodPost, http.MethodPut, http.MethodPatch:
		var req domain.UpdateStatFieldRequest
		if err := decodeJSON(r, &req); err != nil {
			WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		values, err := h.service.UpdateStatField(r.Context(), req)
		if err != nil {
			writeServiceError(w, h.logger, err, "Failed to update statistic")
			return
		}
		writeSuccess(w, http.StatusOK, values, "")

	default:
		methodNotAllowed(w)
	}
}

func (h *StatisticsHandler) handleSiteStatistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		views, err := h.service.SiteStatistics(ctx)
		if err != nil {
			writeServiceError(w, h.logger, err, "Failed to get site statistics")
			return
		}
		writeSuccess(w, http.StatusOK, views, "")

	case http.MethodPost:
		views, err := h.service.Recalculate(ctx)
		if err != nil {
			writeServiceError(w, h.logger, err, "Failed to recalculate statistics")
			return
		}
		writeSuccess(w, http.StatusOK, views, "Statistics recalculated successfully")

	case http.MethodPut:
		var req domain.SetOverrideRequest
		if err := decodeJSON(r, &req); err != nil {
			WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		statType, value, err := req.Validate()
		if err != nil {
			writeServiceError(w, h.logger, err, "Failed to update manual override")
			return
		}

		views, err := h.service.SetOverride(ctx, statType, value)
		if err != nil {
			writeServiceError(w, h.logger, err, "Failed to update manual override")
			return
		}
		writeSuccess(w, http.StatusOK, views, string(statType)+" manual override updated successfully")

	case http.MethodDelete:
		raw := r.URL.Query().Get("stat_type")
		if raw == "" {
			WriteJSONError(w, "Missing required parameter: stat_type", http.StatusBadRequest)
			return
		}

		statType, err := domain.ParseStatType(raw)
		if err != nil {
			writeServiceError(w, h.logger, err, "Failed to remove manual override")
			return
		}

		views, err := h.service.ClearOverride(ctx, statType)
		if err != nil {
			writeServiceError(w, h.logger, err, "Failed to remove manual override")
			return
		}
		writeSuccess(w, http.StatusOK, views, string(statType)+" manual override removed successfully")

	default:
		methodNotAllowed(w)
	}
}
