package handlers

import (
	"net/http"
	"testing"

	"github.com/asv-bible-study-api/internal/models"
	"github.com/asv-bible-study-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplain(t *testing.T) {
	s := newTestServer(t, serverOptions{completer: stubCompleter{reply: "John opens with the eternal Word."}})

	rec := s.do(t, http.MethodPost, "/api/v1/explain", `{"book": "John", "chapter": 1, "verse": 1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	exp := decode[models.Explanation](t, rec)
	assert.Equal(t, models.ExplanationRemote, exp.Kind)
	assert.Equal(t, "John opens with the eternal Word.", exp.Text)
	assert.Equal(t, "John 1:1", exp.Reference)
}

func TestExplain_FailureAnswersFallback(t *testing.T) {
	s := newTestServer(t, serverOptions{completer: stubCompleter{err: errUpstream}})

	rec := s.do(t, http.MethodPost, "/api/v1/explain", `{"book": "Matthew", "chapter": 1, "verse": 1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	exp := decode[models.Explanation](t, rec)
	assert.Equal(t, models.ExplanationFallback, exp.Kind)
	assert.Equal(t, services.FallbackText, exp.Text)
	require.NotNil(t, exp.Fallback)
}

func TestExplain_BadRequest(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/v1/explain", `{"book": "John"}`).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/v1/explain", `not json`).Code)
}

func TestAIExplainProxy(t *testing.T) {
	s := newTestServer(t, serverOptions{completer: stubCompleter{reply: "An explanation."}})

	rec := s.do(t, http.MethodPost, "/api/ai-explain", `{"prompt": "Explain John 1:1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"explanation": "An explanation.",
		"greek": "N/A",
		"context": "N/A",
		"crossRef": "N/A",
		"commentary": "N/A",
		"application": "N/A"
	}`, rec.Body.String())
}

func TestAIExplainProxy_Empty(t *testing.T) {
	s := newTestServer(t, serverOptions{completer: stubCompleter{}})

	rec := s.do(t, http.MethodPost, "/api/ai-explain", `{"prompt": "Explain John 1:1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "No explanation available.", decode[models.CompletionResponse](t, rec).Explanation)
}

func TestAIExplainProxy_Errors(t *testing.T) {
	s := newTestServer(t, serverOptions{completer: stubCompleter{err: errUpstream}})

	rec := s.do(t, http.MethodPost, "/api/ai-explain", `{"prompt": "Explain John 1:1"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "AI service failed."}`, rec.Body.String())

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/ai-explain", `{}`).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, s.do(t, http.MethodGet, "/api/ai-explain", "").Code)
}
