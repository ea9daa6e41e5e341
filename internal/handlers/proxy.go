package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/asv-bible-study-api/internal/models"
	pkgservices "github.com/asv-bible-study-api/pkg/schema/services"
	"github.com/labstack/echo/v4"
)

// Proxy response values
const (
	notAvailable     = "N/A"
	noExplanation    = "No explanation available."
	aiServiceFailure = "AI service failed."
)

// ProxyHandler relays explanation prompts to the completion backend
type ProxyHandler struct {
	completer pkgservices.Completer
}

// NewProxyHandler creates a new proxy handler
func NewProxyHandler(completer pkgservices.Completer) *ProxyHandler {
	return &ProxyHandler{
		completer: completer,
	}
}

// AIExplain handles POST /api/ai-explain
func (h *ProxyHandler) AIExplain(c echo.Context) error {
	var req models.CompletionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Prompt is required")
	}

	text, err := h.completer.Complete(c.Request().Context(), req.Prompt)
	if err != nil && !errors.Is(err, pkgservices.ErrEmptyCompletion) {
		c.Logger().Errorf("AI explain failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": aiServiceFailure})
	}
	if strings.TrimSpace(text) == "" {
		text = noExplanation
	}

	return c.JSON(http.StatusOK, models.CompletionResponse{
		Explanation: text,
		Greek:       notAvailable,
		Context:     notAvailable,
		CrossRef:    notAvailable,
		Commentary:  notAvailable,
		Application: notAvailable,
	})
}

// RegisterRoutes registers the proxy under the /api group
func (h *ProxyHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/ai-explain", h.AIExplain)
}
