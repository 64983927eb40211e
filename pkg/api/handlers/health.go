package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ridopark/stoxcore/internal/logger"
	"github.com/ridopark/stoxcore/pkg/api/types"
)

// HealthHandler serves the liveness endpoint. The compute core has no
// database or network dependency to probe, so health here just confirms
// the process is up and serving.
type HealthHandler struct {
	logger  zerolog.Logger
	version string
}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{
		logger:  logger.NewContextLogger("health_handler"),
		version: version,
	}
}

// GetHealth handles GET /api/v1/health.
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	correlationID := uuid.New().String()
	reqLogger := logger.NewRequestLogger(correlationID, r.Method, r.URL.Path)

	response := &types.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   h.version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Correlation-ID", correlationID)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		reqLogger.Error().Err(err).Msg("Failed to encode health response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	reqLogger.Info().Msg("Health check completed")
}
