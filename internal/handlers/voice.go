package handlers

import (
	"net/http"

	"github.com/asv-bible-study-api/internal/models"
	"github.com/asv-bible-study-api/internal/services"
	"github.com/labstack/echo/v4"
)

// VoiceHandler handles voice command endpoints
type VoiceHandler struct {
	store  *services.VerseStore
	speech services.SpeechCapability
}

// NewVoiceHandler creates a new voice handler
func NewVoiceHandler(store *services.VerseStore, speech services.SpeechCapability) *VoiceHandler {
	if speech == nil {
		speech = services.NoSpeech
	}
	return &VoiceHandler{
		store:  store,
		speech: speech,
	}
}

// Capabilities handles GET /capabilities
func (h *VoiceHandler) Capabilities(c echo.Context) error {
	return c.JSON(http.StatusOK, models.CapabilitiesResponse{Voice: h.speech.Supported()})
}

// Parse handles POST /voice/parse
func (h *VoiceHandler) Parse(c echo.Context) error {
	var req models.VoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	current := req.CurrentBook
	if current == "" {
		current = services.DefaultBook
	}

	return c.JSON(http.StatusOK, services.ParseVoiceCommand(req.Transcript, current, services.CanonicalChapterCount(h.store.MaxChapter)))
}

// RegisterRoutes registers voice routes. The parse route only exists when
// speech input is supported.
func (h *VoiceHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/capabilities", h.Capabilities)
	if h.speech.Supported() {
		g.POST("/voice/parse", h.Parse)
	}
}
