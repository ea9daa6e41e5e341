package handlers

import (
	"net/http"
	"testing"

	"github.com/asv-bible-study-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooks(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	rec := s.do(t, http.MethodGet, "/api/v1/books", "")
	require.Equal(t, http.StatusOK, rec.Code)

	books := decode[[]models.BookSummary](t, rec)
	assert.Equal(t, []models.BookSummary{
		{Name: "Matthew", Chapters: []int{1}},
		{Name: "John", Chapters: []int{1, 3}},
	}, books)
}

func TestChapter(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	s.annotations.ToggleHighlight(t.Context(), "Matthew_1_2")

	rec := s.do(t, http.MethodGet, "/api/v1/books/Matthew/chapters/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	ch := decode[models.ChapterResponse](t, rec)
	require.Len(t, ch.Verses, 2)
	assert.False(t, ch.Verses[0].Highlighted)
	assert.True(t, ch.Verses[1].Highlighted)
	assert.Equal(t, models.VerseKey("Matthew_1_2"), ch.Verses[1].Key)
}

func TestChapter_Absent(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	rec := s.do(t, http.MethodGet, "/api/v1/books/Genesis/chapters/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[models.ChapterResponse](t, rec).Verses)

	rec = s.do(t, http.MethodGet, "/api/v1/books/John/chapters/first", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
