package services

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/asv-bible-study-api/internal/models"
	"github.com/asv-bible-study-api/internal/repository"
)

// Storage keys of the two durable records
const (
	HighlightsStorageKey = "bibleHighlights"
	NotesStorageKey      = "bibleNotes"
)

// AnnotationService owns highlight flags and notes and is the only writer
// of their durable records.
type AnnotationService struct {
	mu         sync.RWMutex
	kv         repository.KeyValueStore
	log        *slog.Logger
	highlights map[models.VerseKey]bool
	notes      map[models.VerseKey]string
}

// NewAnnotationService creates an empty annotation service backed by kv
func NewAnnotationService(kv repository.KeyValueStore, log *slog.Logger) *AnnotationService {
	if log == nil {
		log = slog.Default()
	}
	return &AnnotationService{
		kv:         kv,
		log:        log,
		highlights: make(map[models.VerseKey]bool),
		notes:      make(map[models.VerseKey]string),
	}
}

// Load rehydrates both mappings from durable storage. Absent, unreadable
// or malformed records leave the corresponding mapping empty.
func (s *AnnotationService) Load(ctx context.Context) {
	highlights := loadRecord[bool](ctx, s.kv, s.log, HighlightsStorageKey)
	notes := loadRecord[string](ctx, s.kv, s.log, NotesStorageKey)
	maps.DeleteFunc(highlights, func(_ models.VerseKey, on bool) bool { return !on })

	s.mu.Lock()
	s.highlights = highlights
	s.notes = notes
	s.mu.Unlock()
}

func loadRecord[V any](ctx context.Context, kv repository.KeyValueStore, log *slog.Logger, key string) map[models.VerseKey]V {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Warn("failed to read annotation record", "key", key, "error", err)
		}
		return make(map[models.VerseKey]V)
	}

	var record map[models.VerseKey]V
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		log.Warn("discarding malformed annotation record", "key", key, "error", err)
		return make(map[models.VerseKey]V)
	}
	if record == nil {
		record = make(map[models.VerseKey]V)
	}
	return record
}

// IsHighlighted reports whether key is highlighted
func (s *AnnotationService) IsHighlighted(key models.VerseKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.highlights[key]
}

// ToggleHighlight flips the highlight of key, persists, and returns the new flag
func (s *AnnotationService) ToggleHighlight(ctx context.Context, key models.VerseKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	on := !s.highlights[key]
	if on {
		s.highlights[key] = true
	} else {
		delete(s.highlights, key)
	}

	s.persistLocked(ctx)
	return on
}

// Note returns the note of key, or "" when there is none
func (s *AnnotationService) Note(key models.VerseKey) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes[key]
}

// HasNote reports whether key has a note
func (s *AnnotationService) HasNote(key models.VerseKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.notes[key]
	return ok
}

// SetNote replaces the note of key. A blank note removes it.
func (s *AnnotationService) SetNote(ctx context.Context, key models.VerseKey, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		delete(s.notes, key)
	} else {
		s.notes[key] = text
	}

	s.persistLocked(ctx)
}

// AppendNote adds text to the note of key after a blank line, or makes it
// the note when there is none.
func (s *AnnotationService) AppendNote(ctx context.Context, key models.VerseKey, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.notes[key]; ok && existing != "" {
		s.notes[key] = existing + "\n\n" + text
	} else {
		s.notes[key] = text
	}

	s.persistLocked(ctx)
}

// Highlights returns a copy of the highlight mapping
func (s *AnnotationService) Highlights() map[models.VerseKey]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.highlights)
}

// Notes returns a copy of the note mapping
func (s *AnnotationService) Notes() map[models.VerseKey]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.notes)
}

// Persist writes both records to durable storage
func (s *AnnotationService) Persist(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writeRecords(ctx)
}

// persistLocked is called after every mutation; failures are logged so a
// storage outage never fails the user action.
func (s *AnnotationService) persistLocked(ctx context.Context) {
	if err := s.writeRecords(ctx); err != nil {
		s.log.Error("failed to persist annotations", "error", err)
	}
}

func (s *AnnotationService) writeRecords(ctx context.Context) error {
	h, err := json.Marshal(s.highlights)
	if err != nil {
		return fmt.Errorf("encode highlights: %w", err)
	}
	if err := s.kv.Set(ctx, HighlightsStorageKey, string(h)); err != nil {
		return fmt.Errorf("store highlights: %w", err)
	}

	n, err := json.Marshal(s.notes)
	if err != nil {
		return fmt.Errorf("encode notes: %w", err)
	}
	if err := s.kv.Set(ctx, NotesStorageKey, string(n)); err != nil {
		return fmt.Errorf("store notes: %w", err)
	}
	return nil
}

// Export renders every note as "<book> <chapter>:<verse>\n<note>", blocks
// separated by a blank line. bookOrder positions books; unknown books sort
// after known ones by name. Keys that do not parse are skipped.
func (s *AnnotationService) Export(bookOrder func(book string) (int, bool)) string {
	return ExportNotes(s.Notes(), bookOrder, s.log)
}

type exportEntry struct {
	book    string
	chapter int
	verse   int
	note    string
}

// ExportNotes renders a note mapping in export form
func ExportNotes(notes map[models.VerseKey]string, bookOrder func(book string) (int, bool), log *slog.Logger) string {
	if log == nil {
		log = slog.Default()
	}

	entries := make([]exportEntry, 0, len(notes))
	for key, note := range notes {
		book, chapter, verse, err := models.ParseVerseKey(key)
		if err != nil {
			log.Warn("skipping unparseable note key", "key", key, "error", err)
			continue
		}
		entries = append(entries, exportEntry{book: book, chapter: chapter, verse: verse, note: note})
	}

	rank := func(book string) int {
		if bookOrder != nil {
			if i, ok := bookOrder(book); ok {
				return i
			}
		}
		return int(^uint(0) >> 1)
	}

	slices.SortFunc(entries, func(a, b exportEntry) int {
		return cmp.Or(
			cmp.Compare(rank(a.book), rank(b.book)),
			strings.Compare(a.book, b.book),
			cmp.Compare(a.chapter, b.chapter),
			cmp.Compare(a.verse, b.verse),
		)
	})

	blocks := make([]string, len(entries))
	for i, e := range entries {
		blocks[i] = models.FormatReference(e.book, e.chapter, e.verse) + "\n" + e.note
	}
	return strings.Join(blocks, "\n\n")
}
