package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/asv-bible-study-api/internal/models"
	"github.com/asv-bible-study-api/internal/services"
	"github.com/labstack/echo/v4"
)

// ExportFilename is the download name of the notes export
const ExportFilename = "bible_notes.txt"

// AnnotationHandler handles highlight and note endpoints
type AnnotationHandler struct {
	store       *services.VerseStore
	annotations *services.AnnotationService
}

// NewAnnotationHandler creates a new annotation handler
func NewAnnotationHandler(store *services.VerseStore, annotations *services.AnnotationService) *AnnotationHandler {
	return &AnnotationHandler{
		store:       store,
		annotations: annotations,
	}
}

// verseKey resolves the :key path parameter to the canonical key of a
// known verse. "Matthew_01_1" and "Matthew_1_1" name the same verse.
func (h *AnnotationHandler) verseKey(c echo.Context) (models.VerseKey, string, error) {
	raw, err := url.PathUnescape(c.Param("key"))
	if err != nil {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "Invalid verse key")
	}

	book, chapter, verse, err := models.ParseVerseKey(models.VerseKey(raw))
	if err != nil {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "Invalid verse key")
	}
	if _, ok := h.store.Lookup(book, chapter, verse); !ok {
		return "", "", echo.NewHTTPError(http.StatusNotFound, "Verse not found")
	}
	return models.NewVerseKey(book, chapter, verse), models.FormatReference(book, chapter, verse), nil
}

// Highlights handles GET /highlights
func (h *AnnotationHandler) Highlights(c echo.Context) error {
	return c.JSON(http.StatusOK, h.annotations.Highlights())
}

// ToggleHighlight handles POST /highlights/:key/toggle
func (h *AnnotationHandler) ToggleHighlight(c echo.Context) error {
	key, _, err := h.verseKey(c)
	if err != nil {
		return err
	}

	on := h.annotations.ToggleHighlight(c.Request().Context(), key)
	return c.JSON(http.StatusOK, models.HighlightToggleResponse{Key: key, Highlighted: on})
}

// Notes handles GET /notes
func (h *AnnotationHandler) Notes(c echo.Context) error {
	return c.JSON(http.StatusOK, h.annotations.Notes())
}

// Note handles GET /notes/:key
func (h *AnnotationHandler) Note(c echo.Context) error {
	key, ref, err := h.verseKey(c)
	if err != nil {
		return err
	}
	if !h.annotations.HasNote(key) {
		return echo.NewHTTPError(http.StatusNotFound, "Note not found")
	}

	return c.JSON(http.StatusOK, models.NoteResponse{Key: key, Reference: ref, Text: h.annotations.Note(key)})
}

// SetNote handles PUT /notes/:key. A blank text removes the note.
func (h *AnnotationHandler) SetNote(c echo.Context) error {
	key, ref, err := h.verseKey(c)
	if err != nil {
		return err
	}

	var req models.NoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	h.annotations.SetNote(c.Request().Context(), key, req.Text)
	return c.JSON(http.StatusOK, models.NoteResponse{Key: key, Reference: ref, Text: h.annotations.Note(key)})
}

// AppendNote handles POST /notes/:key/append
func (h *AnnotationHandler) AppendNote(c echo.Context) error {
	key, ref, err := h.verseKey(c)
	if err != nil {
		return err
	}

	var req models.NoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Text is required")
	}

	h.annotations.AppendNote(c.Request().Context(), key, req.Text)
	return c.JSON(http.StatusOK, models.NoteResponse{Key: key, Reference: ref, Text: h.annotations.Note(key)})
}

// Export handles GET /notes/export
func (h *AnnotationHandler) Export(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+ExportFilename+`"`)
	return c.String(http.StatusOK, h.annotations.Export(h.store.BookIndex))
}

// RegisterRoutes registers highlight and note routes
func (h *AnnotationHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/highlights", h.Highlights)
	g.POST("/highlights/:key/toggle", h.ToggleHighlight)

	g.GET("/notes", h.Notes)
	g.GET("/notes/export", h.Export)
	g.GET("/notes/:key", h.Note)
	g.PUT("/notes/:key", h.SetNote)
	g.POST("/notes/:key/append", h.AppendNote)
}
