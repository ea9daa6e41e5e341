package handlers

import (
	"net/http"

	"github.com/asv-bible-study-api/internal/models"
	"github.com/asv-bible-study-api/internal/services"
	"github.com/labstack/echo/v4"
)

// SearchHandler handles search endpoints
type SearchHandler struct {
	search *services.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(search *services.SearchService) *SearchHandler {
	return &SearchHandler{
		search: search,
	}
}

// Search handles GET /search?q= - substring verse search
func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	return c.JSON(http.StatusOK, models.SearchResponse{
		Query:   q,
		Results: h.search.Search(q),
	})
}

// SearchBody handles POST /search
func (h *SearchHandler) SearchBody(c echo.Context) error {
	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	return c.JSON(http.StatusOK, models.SearchResponse{
		Query:   req.Query,
		Results: h.search.Search(req.Query),
	})
}

// RegisterRoutes registers search routes
func (h *SearchHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
	g.POST("/search", h.SearchBody)
}
