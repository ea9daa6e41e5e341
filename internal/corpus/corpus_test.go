package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedded(t *testing.T) {
	verses, err := Embedded()
	require.NoError(t, err)
	require.NotEmpty(t, verses)

	first := verses[0]
	assert.Equal(t, "Matthew", first.Book)
	assert.Equal(t, 1, first.Chapter)
	assert.Equal(t, 1, first.Verse)
	assert.True(t, strings.HasPrefix(first.Text, "The book of the generation of Jesus Christ"))

	last := verses[len(verses)-1]
	assert.Equal(t, "John", last.Book)
}

func TestDecode_PreservesDocumentOrder(t *testing.T) {
	doc := `[
		{"book": "Mark", "chapters": [{"chapter": 1, "verses": [{"verse": 1, "text": "a"}]}]},
		{"book": "Luke", "chapters": [{"chapter": 2, "verses": [{"verse": 3, "text": "b"}, {"verse": 4, "text": "c"}]}]}
	]`

	verses, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, verses, 3)
	assert.Equal(t, "Mark 1:1", verses[0].Reference())
	assert.Equal(t, "Luke 2:3", verses[1].Reference())
	assert.Equal(t, "Luke 2:4", verses[2].Reference())
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"book":`))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"book": "John", "chapters": [{"chapter": 3, "verses": [{"verse": 16, "text": "For God so loved the world"}]}]}]`), 0o644))

	verses, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, verses, 1)
	assert.Equal(t, "John 3:16", verses[0].Reference())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
