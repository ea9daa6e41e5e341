package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/asv-bible-study-api/internal/repository"
	"github.com/asv-bible-study-api/pkg/schema/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, path string) *KeyValueRepository {
	t.Helper()

	conn, err := db.OpenSQLite(t.Context(), path)
	require.NoError(t, err)

	r := NewKeyValueRepository(conn)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestKeyValueRepository_GetMissing(t *testing.T) {
	r := newTestRepo(t, ":memory:")

	_, err := r.Get(t.Context(), "bibleNotes")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestKeyValueRepository_SetOverwrites(t *testing.T) {
	r := newTestRepo(t, ":memory:")

	require.NoError(t, r.Set(t.Context(), "bibleNotes", `{"Matthew_1_1":"first"}`))
	require.NoError(t, r.Set(t.Context(), "bibleNotes", `{"Matthew_1_1":"second"}`))

	v, err := r.Get(t.Context(), "bibleNotes")
	require.NoError(t, err)
	assert.Equal(t, `{"Matthew_1_1":"second"}`, v)
	assert.NoError(t, r.Ping(t.Context()))
}

func TestKeyValueRepository_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "study.db")

	conn, err := db.OpenSQLite(t.Context(), path)
	require.NoError(t, err)
	first := NewKeyValueRepository(conn)
	require.NoError(t, first.Set(t.Context(), "bibleHighlights", `{"John_3_16":true}`))
	require.NoError(t, first.Close())

	second := newTestRepo(t, path)
	v, err := second.Get(t.Context(), "bibleHighlights")
	require.NoError(t, err)
	assert.Equal(t, `{"John_3_16":true}`, v)
}
