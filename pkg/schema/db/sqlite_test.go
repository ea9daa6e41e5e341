package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite_AppliesMigrations(t *testing.T) {
	conn, err := OpenSQLite(t.Context(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	var version int
	var dirty bool
	require.NoError(t, conn.QueryRowx(`SELECT version, dirty FROM schema_migrations`).Scan(&version, &dirty))
	assert.Equal(t, 1, version)
	assert.False(t, dirty)

	_, err = conn.Exec(`INSERT INTO study_kv (key, value) VALUES (?, ?)`, "highlights", "{}")
	require.NoError(t, err)
}

func TestOpenSQLite_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "study.db")

	conn, err := OpenSQLite(t.Context(), path)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO study_kv (key, value) VALUES (?, ?)`, "notes", `{"John_3_16":"memorise"}`)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	conn, err = OpenSQLite(t.Context(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	var value string
	require.NoError(t, conn.Get(&value, `SELECT value FROM study_kv WHERE key = ?`, "notes"))
	assert.Equal(t, `{"John_3_16":"memorise"}`, value)
}
