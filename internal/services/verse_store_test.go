package services

import (
	"slices"
	"testing"

	"github.com/asv-bible-study-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerseStore_Lookup(t *testing.T) {
	s := newTestStore()

	text, ok := s.Lookup("John", 3, 16)
	require.True(t, ok)
	assert.Contains(t, text, "For God so loved the world")

	for _, ref := range []struct {
		book    string
		chapter int
		verse   int
	}{
		{"Genesis", 1, 1},
		{"John", 2, 1},
		{"John", 3, 17},
	} {
		_, ok := s.Lookup(ref.book, ref.chapter, ref.verse)
		assert.False(t, ok, "%s %d:%d", ref.book, ref.chapter, ref.verse)
	}
}

func TestVerseStore_Ordering(t *testing.T) {
	s := NewVerseStore([]models.Verse{
		{Book: "Mark", Chapter: 2, Verse: 3, Text: "c"},
		{Book: "Mark", Chapter: 1, Verse: 2, Text: "b"},
		{Book: "Luke", Chapter: 1, Verse: 1, Text: "d"},
		{Book: "Mark", Chapter: 1, Verse: 1, Text: "a"},
		{Book: "Mark", Chapter: 1, Verse: 1, Text: "duplicate"},
		{Book: "Mark", Chapter: 0, Verse: 1, Text: "bad"},
	})

	assert.Equal(t, []string{"Mark", "Luke"}, s.Books())
	assert.Equal(t, []int{1, 2}, s.Chapters("Mark"))
	assert.Equal(t, 2, s.MaxChapter("Mark"))
	assert.Equal(t, 4, s.Len())

	var texts []string
	for v := range s.All() {
		texts = append(texts, v.Text)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, texts)

	i, ok := s.BookIndex("Luke")
	require.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestVerseStore_FailsSoft(t *testing.T) {
	s := newTestStore()

	assert.Equal(t, []int{}, s.Chapters("Revelation"))
	assert.Equal(t, 0, s.MaxChapter("Revelation"))
	assert.Empty(t, s.Verses("Matthew", 9))

	_, ok := s.BookIndex("Revelation")
	assert.False(t, ok)
}

func TestVerseStore_VersesAreCopies(t *testing.T) {
	s := newTestStore()

	vs := s.Verses("Matthew", 1)
	require.Len(t, vs, 2)
	vs[0].Text = "changed"

	text, _ := s.Lookup("Matthew", 1, 1)
	assert.NotEqual(t, "changed", text)
}

func TestVerseStore_Summaries(t *testing.T) {
	sums := newTestStore().Summaries()
	require.Len(t, sums, 2)
	assert.Equal(t, "Matthew", sums[0].Name)
	assert.Equal(t, []int{1, 2}, sums[0].Chapters)
	assert.Equal(t, "John", sums[1].Name)
	assert.True(t, slices.Equal([]int{1, 3}, sums[1].Chapters))
}
