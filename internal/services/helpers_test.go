package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/asv-bible-study-api/internal/models"
	"github.com/asv-bible-study-api/internal/repository"
	"github.com/asv-bible-study-api/internal/repository/memory"
)

var testVerses = []models.Verse{
	{Book: "Matthew", Chapter: 1, Verse: 1, Text: "The book of the generation of Jesus Christ, the son of David, the son of Abraham."},
	{Book: "Matthew", Chapter: 1, Verse: 2, Text: "Abraham begat Isaac; and Isaac begat Jacob; and Jacob begat Judah and his brethren;"},
	{Book: "Matthew", Chapter: 2, Verse: 1, Text: "Now when Jesus was born in Bethlehem of Judaea in the days of Herod the king, behold, Wise-men from the east came to Jerusalem, saying,"},
	{Book: "John", Chapter: 1, Verse: 1, Text: "In the beginning was the Word, and the Word was with God, and the Word was God."},
	{Book: "John", Chapter: 3, Verse: 16, Text: "For God so loved the world, that he gave his only begotten Son, that whosoever believeth on him should not perish, but have eternal life."},
}

func newTestStore() *VerseStore {
	return NewVerseStore(testVerses)
}

func newTestAnnotations(t *testing.T) (*AnnotationService, *memory.KeyValueRepository) {
	t.Helper()
	kv := memory.NewKeyValueRepository()
	return NewAnnotationService(kv, nil), kv
}

// failingKV fails every read and write
type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, error) {
	return "", errors.New("storage offline")
}

func (failingKV) Set(context.Context, string, string) error {
	return errors.New("storage offline")
}

var _ repository.KeyValueStore = failingKV{}

// explainFunc adapts a function to ExplanationClient
type explainFunc func(ctx context.Context, prompt string) (string, error)

func (f explainFunc) Explain(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// recordingClient remembers the prompts it was asked
type recordingClient struct {
	mu      sync.Mutex
	prompts []string
	reply   string
}

func (c *recordingClient) Explain(_ context.Context, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, prompt)
	return c.reply, nil
}

// gatedKV holds every write until release is closed
type gatedKV struct {
	*memory.KeyValueRepository
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedKV() *gatedKV {
	return &gatedKV{
		KeyValueRepository: memory.NewKeyValueRepository(),
		entered:            make(chan struct{}),
		release:            make(chan struct{}),
	}
}

func (g *gatedKV) Set(ctx context.Context, key, value string) error {
	g.once.Do(func() { close(g.entered) })
	<-g.release
	return g.KeyValueRepository.Set(ctx, key, value)
}
