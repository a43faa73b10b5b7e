package handlers

import (
	"net/http"
	"time"

	"kore-landing-backend/internal/database"
	"kore-landing-backend/internal/logger"
	"kore-landing-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db      *gorm.DB
	backend repository.Backend
}

// NewHealthHandler creates a new health handler. db is nil for the memory
// backend and for a database that failed to open.
func NewHealthHandler(db *gorm.DB, backend repository.Backend) *HealthHandler {
	return &HealthHandler{
		db:      db,
		backend: backend,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Storage   string            `json:"storage"`
	Services  map[string]string `json:"services"`
}

// Health returns the health status of the application
// @Summary Health check
// @Description Get the overall health status including the lead storage backend
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Application is healthy"
// @Failure 503 {object} HealthResponse "Application is unhealthy"
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   Version,
		Storage:   string(h.backend),
		Services:  make(map[string]string),
	}

	state, ok := h.checkStorage(c, "healthy", "unhealthy")
	response.Services["database"] = state
	if !ok {
		response.Status = "unhealthy"
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

// Ready returns the readiness status of the application
// @Summary Readiness check
// @Description Check if the application is ready to accept lead submissions
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Application is ready"
// @Failure 503 {object} map[string]interface{} "Application is not ready"
// @Router /health/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	state, ready := h.checkStorage(c, "ready", "not ready")

	response := map[string]interface{}{
		"ready":     ready,
		"timestamp": time.Now(),
		"storage":   string(h.backend),
		"services":  map[string]string{"database": state},
	}

	statusCode := http.StatusOK
	if !ready {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

// Live returns the liveness status of the application
// @Summary Liveness check
// @Description Check if the application is alive and responding
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Application is alive"
// @Router /health/live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	// Simple liveness check - if we can respond, we're alive
	c.JSON(http.StatusOK, map[string]interface{}{
		"alive":     true,
		"timestamp": time.Now(),
	})
}

// checkStorage reports the database state. The memory backend has no
// database and is always usable. Ping errors are logged, never returned
// to the caller.
func (h *HealthHandler) checkStorage(c *gin.Context, okState, failState string) (string, bool) {
	if h.backend == repository.BackendMemory {
		return "not configured (in-memory storage)", true
	}
	if err := database.Ping(h.db); err != nil {
		logger.WithContext(c.Request.Context()).WithError(err).Warn("Database health check failed")
		return failState, false
	}
	return okState, true
}
