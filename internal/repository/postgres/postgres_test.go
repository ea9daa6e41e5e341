package postgres

import (
	"context"
	"flag"
	"log"
	"os"
	"testing"
	"time"

	"github.com/asv-bible-study-api/internal/models"
	"github.com/asv-bible-study-api/internal/repository"
	"github.com/asv-bible-study-api/pkg/schema/db"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

var testDB *sqlx.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cont, err := tcpostgres.Run(ctx, "postgres:17-alpine",
		tcpostgres.WithDatabase("bible_study"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("password"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Fatalf("failed to start postgres container: %v", err)
	}

	uri, err := cont.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("failed to get connection string: %v", err)
	}

	testDB, err = db.ConnectPostgres(ctx, uri)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	if err := db.Migrate(testDB); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	code := m.Run()

	_ = testDB.Close()
	_ = testcontainers.TerminateContainer(cont)
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testDB == nil {
		t.Skip("postgres container not started in short mode")
	}
}

func TestKeyValueRepository(t *testing.T) {
	requireDB(t)
	r := NewKeyValueRepository(testDB)

	_, err := r.Get(t.Context(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, r.Set(t.Context(), "bibleHighlights", `{"Matthew_1_1":true}`))
	require.NoError(t, r.Set(t.Context(), "bibleHighlights", `{"Matthew_1_2":true}`))

	v, err := r.Get(t.Context(), "bibleHighlights")
	require.NoError(t, err)
	assert.Equal(t, `{"Matthew_1_2":true}`, v)
	assert.NoError(t, r.Ping(t.Context()))
}

func TestVerseRepository_UpsertAndList(t *testing.T) {
	requireDB(t)
	r := NewVerseRepository(testDB)

	_, err := testDB.ExecContext(t.Context(), `DELETE FROM verses`)
	require.NoError(t, err)

	require.NoError(t, r.UpsertVerses(t.Context(), []models.Verse{
		{Book: "Matthew", Chapter: 2, Verse: 1, Text: "Now when Jesus was born in Bethlehem of Judaea"},
		{Book: "Matthew", Chapter: 1, Verse: 2, Text: "Abraham begat Isaac"},
		{Book: "Matthew", Chapter: 1, Verse: 1, Text: "The book of the generation of Jesus Christ"},
		{Book: "John", Chapter: 1, Verse: 1, Text: "In the beginning was the Word"},
	}))

	verses, err := r.ListVerses(t.Context())
	require.NoError(t, err)
	require.Len(t, verses, 4)

	refs := make([]string, len(verses))
	for i, v := range verses {
		refs[i] = v.Reference()
	}
	assert.Equal(t, []string{"Matthew 1:1", "Matthew 1:2", "Matthew 2:1", "John 1:1"}, refs)
}
