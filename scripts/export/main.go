// export writes the saved notes to a plain-text file, one block per verse:
//
//	Matthew 1:1
//	<note text>
//
// Blocks follow corpus order and are separated by a blank line. Notes are
// read from the durable store selected by STORAGE_BACKEND.
//
// Usage:
//   go run ./scripts/export -output bible_notes.txt

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/asv-bible-study-api/internal/corpus"
	"github.com/asv-bible-study-api/internal/services"
	"github.com/asv-bible-study-api/internal/storage"
	"github.com/asv-bible-study-api/pkg/schema/config"
	"github.com/asv-bible-study-api/pkg/schema/db"
	"github.com/joho/godotenv"
)

func main() {
	outputFile := flag.String("output", "bible_notes.txt", "Output text file path")
	corpusFile := flag.String("corpus", "", "Corpus JSON file used for book order (default: embedded ASV sample)")
	flag.Parse()

	// Load environment variables
	godotenv.Load()

	cfg := config.GetConfig()
	ctx := context.Background()

	kv, closeStorage, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageBackend, err)
	}
	defer db.ClosePostgres()
	defer closeStorage()

	annotations := services.NewAnnotationService(kv, nil)
	annotations.Load(ctx)

	verses, err := corpus.Embedded()
	if *corpusFile != "" {
		verses, err = corpus.LoadFile(*corpusFile)
	}
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}
	store := services.NewVerseStore(verses)

	notes := annotations.Notes()
	text := services.ExportNotes(notes, store.BookIndex, nil)

	if err := os.WriteFile(*outputFile, []byte(text), 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *outputFile, err)
	}

	log.Printf("Exported %d notes to %s", len(notes), *outputFile)
}
