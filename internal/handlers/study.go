package handlers

import (
	"errors"
	"net/http"

	"github.com/asv-bible-study-api/internal/models"
	"github.com/asv-bible-study-api/internal/services"
	"github.com/labstack/echo/v4"
)

// StudyHandler exposes the study session view state
type StudyHandler struct {
	session *services.StudySession
	speech  services.SpeechCapability
}

// NewStudyHandler creates a new study handler
func NewStudyHandler(session *services.StudySession, speech services.SpeechCapability) *StudyHandler {
	if speech == nil {
		speech = services.NoSpeech
	}
	return &StudyHandler{
		session: session,
		speech:  speech,
	}
}

func studyError(err error) error {
	switch {
	case errors.Is(err, services.ErrUnknownBook), errors.Is(err, services.ErrVerseNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrEditorClosed), errors.Is(err, services.ErrNoExplanation):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidTheme):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// State handles GET /study
func (h *StudyHandler) State(c echo.Context) error {
	return c.JSON(http.StatusOK, h.session.Snapshot())
}

// Navigate handles POST /study/navigate
func (h *StudyHandler) Navigate(c echo.Context) error {
	var req models.NavigateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := h.session.Navigate(req.Book, req.Chapter); err != nil {
		return studyError(err)
	}
	return c.JSON(http.StatusOK, h.session.Snapshot())
}

// Preferences handles POST /study/preferences
func (h *StudyHandler) Preferences(c echo.Context) error {
	var req models.PreferencesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if req.Theme != nil {
		if err := h.session.SetTheme(*req.Theme); err != nil {
			return studyError(err)
		}
	}
	if req.ToggleTheme {
		h.session.ToggleTheme()
	}
	if req.FontSize != nil {
		h.session.SetFontSize(*req.FontSize)
	}
	return c.JSON(http.StatusOK, h.session.Snapshot())
}

// Search handles POST /study/search
func (h *StudyHandler) Search(c echo.Context) error {
	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	return c.JSON(http.StatusOK, models.SearchResponse{
		Query:   req.Query,
		Results: h.session.RunSearch(req.Query),
	})
}

// Voice handles POST /study/voice
func (h *StudyHandler) Voice(c echo.Context) error {
	var req models.VoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	cmd := h.session.ApplyVoice(req.Transcript)
	if !cmd.Resolved() {
		c.Logger().Infof("voice command not understood: %q", req.Transcript)
	}
	return c.JSON(http.StatusOK, cmd)
}

// OpenNote handles POST /study/notes/open
func (h *StudyHandler) OpenNote(c echo.Context) error {
	var req models.OpenNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	ed, err := h.session.OpenNote(req.Book, req.Chapter, req.Verse)
	if err != nil {
		return studyError(err)
	}
	return c.JSON(http.StatusOK, ed)
}

// EditNote handles PUT /study/notes/draft
func (h *StudyHandler) EditNote(c echo.Context) error {
	var req models.NoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	ed, err := h.session.EditNote(req.Text)
	if err != nil {
		return studyError(err)
	}
	return c.JSON(http.StatusOK, ed)
}

// SaveNote handles POST /study/notes/save
func (h *StudyHandler) SaveNote(c echo.Context) error {
	note, err := h.session.SaveNote(c.Request().Context())
	if err != nil {
		return studyError(err)
	}
	return c.JSON(http.StatusOK, note)
}

// CancelNote handles POST /study/notes/cancel
func (h *StudyHandler) CancelNote(c echo.Context) error {
	if err := h.session.CancelNote(); err != nil {
		return studyError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Explain handles POST /study/explain
func (h *StudyHandler) Explain(c echo.Context) error {
	var req models.ExplainRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if req.Book == "" || req.Chapter < 1 || req.Verse < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "Book, chapter and verse are required")
	}

	exp, applied, err := h.session.RequestExplanation(c.Request().Context(), req.Book, req.Chapter, req.Verse)
	if err != nil {
		return studyError(err)
	}
	if !applied {
		c.Logger().Debugf("discarded stale explanation for %s", exp.Reference)
	}
	return c.JSON(http.StatusOK, exp)
}

// AddExplanationToNotes handles POST /study/explain/notes
func (h *StudyHandler) AddExplanationToNotes(c echo.Context) error {
	note, err := h.session.AddExplanationToNotes(c.Request().Context())
	if err != nil {
		return studyError(err)
	}
	return c.JSON(http.StatusOK, note)
}

// RegisterRoutes registers study session routes
func (h *StudyHandler) RegisterRoutes(g *echo.Group) {
	s := g.Group("/study")

	s.GET("", h.State)
	s.POST("/navigate", h.Navigate)
	s.POST("/preferences", h.Preferences)
	s.POST("/search", h.Search)
	if h.speech.Supported() {
		s.POST("/voice", h.Voice)
	}
	s.POST("/notes/open", h.OpenNote)
	s.PUT("/notes/draft", h.EditNote)
	s.POST("/notes/save", h.SaveNote)
	s.POST("/notes/cancel", h.CancelNote)
	s.POST("/explain", h.Explain)
	s.POST("/explain/notes", h.AddExplanationToNotes)
}
