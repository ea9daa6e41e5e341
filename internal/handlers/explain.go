package handlers

import (
	"net/http"

	"github.com/asv-bible-study-api/internal/models"
	"github.com/asv-bible-study-api/internal/services"
	"github.com/labstack/echo/v4"
)

// ExplainHandler handles verse explanation endpoints
type ExplainHandler struct {
	explainer *services.ExplanationService
}

// NewExplainHandler creates a new explain handler
func NewExplainHandler(explainer *services.ExplanationService) *ExplainHandler {
	return &ExplainHandler{
		explainer: explainer,
	}
}

// Explain handles POST /explain. Remote failures answer 200 with the
// fallback explanation.
func (h *ExplainHandler) Explain(c echo.Context) error {
	var req models.ExplainRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Book == "" || req.Chapter < 1 || req.Verse < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "Book, chapter and verse are required")
	}

	return c.JSON(http.StatusOK, h.explainer.Explain(c.Request().Context(), req.Book, req.Chapter, req.Verse))
}

// RegisterRoutes registers explanation routes
func (h *ExplainHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/explain", h.Explain)
}
