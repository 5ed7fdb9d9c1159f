package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"stocktrack/internal/caching"
)

// HealthHandlers handles health check endpoints.
type HealthHandlers struct {
	cache caching.CacheService
}

// NewHealthHandlers creates a new health handlers instance.
func NewHealthHandlers(cache caching.CacheService) *HealthHandlers {
	return &HealthHandlers{cache: cache}
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthCheck handles GET /health.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
	}

	if err := h.cache.Ping(c.Request().Context()); err != nil {
		health.Services["cache"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["cache"] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}
	return c.JSON(statusCode, health)
}

// ReadinessCheck handles GET /health/ready. The registries are in
// memory, so the process is ready as soon as it serves traffic.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}
