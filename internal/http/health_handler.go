package http

import (
	"context"
	"net/http"
	"time"
)

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthInfo is what the health endpoint may reveal about the deployment
type HealthInfo struct {
	Environment    string
	Version        string
	EmailProvider  string
	HasEmailKey    bool
	HasAdminSecret bool
	HasRedis       bool
}

type HealthHandler struct {
	info HealthInfo
	db   Pinger
	now  func() time.Time
}

func NewHealthHandler(info HealthInfo, db Pinger) *HealthHandler {
	return &HealthHandler{
		info: info,
		db:   db,
		now:  time.Now,
	}
}

func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", h.handleHealth)
}

func (h *HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	status := "ok"
	database := "ok"
	code := http.StatusOK

	if h.db == nil {
		database = "not_configured"
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			status = "degraded"
			database = "unavailable"
			code = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, code, Response{
		Success: code == http.StatusOK,
		Data: map[string]interface{}{
			"status":         status,
			"timestamp":      h.now().UTC().Format(time.RFC3339Nano),
			"environment":    h.info.Environment,
			"version":        h.info.Version,
			"database":       database,
			"emailProvider":  h.info.EmailProvider,
			"hasEmailKey":    h.info.HasEmailKey,
			"hasAdminSecret": h.info.HasAdminSecret,
			"hasRedis":       h.info.HasRedis,
		},
	})
}
