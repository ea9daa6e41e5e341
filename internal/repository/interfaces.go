package repository

import (
	"context"
	"errors"

	"github.com/asv-bible-study-api/internal/models"
)

// ErrNotFound is returned by KeyValueStore.Get for a missing key
var ErrNotFound = errors.New("key not found")

// KeyValueStore defines durable storage for serialized annotation records
type KeyValueStore interface {
	// Get returns the value stored under key or ErrNotFound
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error
}

// Pinger is implemented by stores that can report connectivity
type Pinger interface {
	Ping(ctx context.Context) error
}

// VerseRepository defines read access to a persisted verse corpus
type VerseRepository interface {
	// ListVerses returns every verse in (book, chapter, verse) order
	ListVerses(ctx context.Context) ([]models.Verse, error)
}
