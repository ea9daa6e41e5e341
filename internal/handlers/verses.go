package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/asv-bible-study-api/internal/services"
	"github.com/labstack/echo/v4"
)

// VerseHandler serves the verse corpus
type VerseHandler struct {
	store       *services.VerseStore
	annotations *services.AnnotationService
}

// NewVerseHandler creates a new verse handler
func NewVerseHandler(store *services.VerseStore, annotations *services.AnnotationService) *VerseHandler {
	return &VerseHandler{
		store:       store,
		annotations: annotations,
	}
}

// Books handles GET /books
func (h *VerseHandler) Books(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Summaries())
}

// Chapter handles GET /books/:book/chapters/:chapter. An absent chapter
// renders as an empty verse list.
func (h *VerseHandler) Chapter(c echo.Context) error {
	chapter, err := strconv.Atoi(c.Param("chapter"))
	if err != nil || chapter < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "Chapter must be a positive integer")
	}

	book, err := url.PathUnescape(c.Param("book"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid book")
	}

	return c.JSON(http.StatusOK, services.ChapterView(h.store, h.annotations, book, chapter))
}

// RegisterRoutes registers verse routes
func (h *VerseHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/books", h.Books)
	g.GET("/books/:book/chapters/:chapter", h.Chapter)
}
