package handlers

import (
	"net/http"

	"github.com/asv-bible-study-api/internal/repository"
	"github.com/labstack/echo/v4"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	storage repository.KeyValueStore
	backend string
}

// NewHealthHandler creates a new health handler for the given storage backend
func NewHealthHandler(storage repository.KeyValueStore, backend string) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		backend: backend,
	}
}

// HealthResponse is the response for basic health check
type HealthResponse struct {
	Status string `json:"status"`
}

// StorageHealthResponse is the response for storage health check
type StorageHealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
	})
}

// StorageHealth handles GET /health/storage
func (h *HealthHandler) StorageHealth(c echo.Context) error {
	if h.storage == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_configured",
			"error":  "durable storage is not configured",
		})
	}

	if p, ok := h.storage.(repository.Pinger); ok {
		if err := p.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "error",
				"error":  err.Error(),
			})
		}
	}

	return c.JSON(http.StatusOK, StorageHealthResponse{
		Status:  "connected",
		Storage: h.backend,
	})
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/health", h.Health)
	g.GET("/health/storage", h.StorageHealth)
}
