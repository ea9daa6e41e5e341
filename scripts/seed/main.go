// seed loads a verse corpus into PostgreSQL for VERSE_SOURCE=postgres.
//
// The schema migrations are applied first, then every verse is upserted
// keyed on (book, chapter, verse), so the script can be re-run safely.
//
// Environment variables:
//   POSTGRES_URI - PostgreSQL connection string
//
// Usage:
//   go run ./scripts/seed                      # embedded ASV sample
//   go run ./scripts/seed -input asv_full.json # ordered corpus file

package main

import (
	"context"
	"flag"
	"log"

	"github.com/asv-bible-study-api/internal/corpus"
	"github.com/asv-bible-study-api/internal/models"
	"github.com/asv-bible-study-api/internal/repository/postgres"
	"github.com/asv-bible-study-api/pkg/schema/db"
	"github.com/joho/godotenv"
)

func main() {
	inputFile := flag.String("input", "", "Corpus JSON file (default: embedded ASV sample)")
	flag.Parse()

	// Load environment variables
	godotenv.Load()

	var (
		verses []models.Verse
		err    error
	)
	if *inputFile != "" {
		verses, err = corpus.LoadFile(*inputFile)
	} else {
		verses, err = corpus.Embedded()
	}
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}

	ctx := context.Background()

	// Connect and migrate
	if err := db.InitPostgres(ctx); err != nil {
		log.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	defer db.ClosePostgres()

	repo := postgres.NewVerseRepository(db.GetPostgres())

	log.Printf("Upserting %d verses...", len(verses))
	if err := repo.UpsertVerses(ctx, verses); err != nil {
		log.Fatalf("Failed to upsert verses: %v", err)
	}

	stored, err := repo.ListVerses(ctx)
	if err != nil {
		log.Fatalf("Failed to verify verses: %v", err)
	}
	log.Printf("Done: %d verses stored", len(stored))
}
