package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/asv-bible-study-api/internal/models"
)

// Study session defaults
const (
	DefaultBook     = "Matthew"
	DefaultChapter  = 1
	DefaultFontSize = 16
	MinFontSize     = 12
	MaxFontSize     = 24
)

var (
	ErrEditorClosed  = errors.New("note editor is not open")
	ErrUnknownBook   = errors.New("unknown book")
	ErrNoExplanation = errors.New("no explanation is displayed")
	ErrInvalidTheme  = errors.New("invalid theme")
)

// StudySession is the view state of one reader: position, display
// preferences, search results, the note editor and the explanation panel.
type StudySession struct {
	mu sync.Mutex

	store       *VerseStore
	annotations *AnnotationService
	search      *SearchService
	explainer   *ExplanationService

	book     string
	chapter  int
	fontSize int
	theme    models.Theme

	searchTerm    string
	searchResults []models.SearchResult

	editor models.NoteEditorState

	explainSeq     uint64
	explainLoading bool
	explanation    *models.Explanation
}

// NewStudySession creates a session positioned at Matthew 1, or at the
// first book of the store when Matthew is absent.
func NewStudySession(store *VerseStore, annotations *AnnotationService, search *SearchService, explainer *ExplanationService) *StudySession {
	s := &StudySession{
		store:         store,
		annotations:   annotations,
		search:        search,
		explainer:     explainer,
		book:          DefaultBook,
		chapter:       DefaultChapter,
		fontSize:      DefaultFontSize,
		theme:         models.ThemeLight,
		searchResults: []models.SearchResult{},
	}

	if _, ok := store.BookIndex(DefaultBook); !ok {
		if books := store.Books(); len(books) > 0 {
			s.book = books[0]
			if chs := store.Chapters(s.book); len(chs) > 0 {
				s.chapter = chs[0]
			}
		}
	}
	return s
}

// Position returns the current book and chapter
func (s *StudySession) Position() (string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book, s.chapter
}

// Navigate moves the session. A nil argument leaves that coordinate
// unchanged. Switching book without a chapter keeps the current chapter
// when the new book has it and otherwise moves to its first chapter.
func (s *StudySession) Navigate(book *string, chapter *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.book
	if book != nil {
		if _, ok := s.store.BookIndex(*book); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownBook, *book)
		}
		target = *book
	}

	chapters := s.store.Chapters(target)
	next := s.chapter
	if chapter != nil {
		if !slices.Contains(chapters, *chapter) {
			return fmt.Errorf("%w: %s %d", ErrVerseNotFound, target, *chapter)
		}
		next = *chapter
	} else if !slices.Contains(chapters, next) && len(chapters) > 0 {
		next = chapters[0]
	}

	s.book, s.chapter = target, next
	return nil
}

// ApplyVoice interprets a transcript and applies whichever coordinates it
// resolved. Unresolved fields leave the position unchanged.
func (s *StudySession) ApplyVoice(transcript string) models.VoiceCommand {
	s.mu.Lock()
	defer s.mu.Unlock()

	cmd := ParseVoiceCommand(transcript, s.book, CanonicalChapterCount(s.store.MaxChapter))
	if cmd.Book != nil {
		s.book = *cmd.Book
	}
	if cmd.Chapter != nil {
		s.chapter = *cmd.Chapter
	}
	return cmd
}

// RunSearch records term and its results
func (s *StudySession) RunSearch(term string) []models.SearchResult {
	results := s.search.Search(term)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = term
	s.searchResults = results
	return slices.Clone(results)
}

// SetFontSize sets the font size clamped to [MinFontSize, MaxFontSize]
func (s *StudySession) SetFontSize(size int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fontSize = min(max(size, MinFontSize), MaxFontSize)
	return s.fontSize
}

// SetTheme sets the display theme
func (s *StudySession) SetTheme(theme models.Theme) error {
	if theme != models.ThemeLight && theme != models.ThemeDark {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	return nil
}

// ToggleTheme flips between light and dark
func (s *StudySession) ToggleTheme() models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.theme == models.ThemeDark {
		s.theme = models.ThemeLight
	} else {
		s.theme = models.ThemeDark
	}
	return s.theme
}

// ChapterView returns the verses of the current chapter with their
// annotation flags. An absent chapter renders as no verses.
func (s *StudySession) ChapterView() models.ChapterResponse {
	s.mu.Lock()
	book, chapter := s.book, s.chapter
	s.mu.Unlock()
	return ChapterView(s.store, s.annotations, book, chapter)
}

// ChapterView renders a chapter with annotation flags
func ChapterView(store *VerseStore, annotations *AnnotationService, book string, chapter int) models.ChapterResponse {
	verses := store.Verses(book, chapter)
	out := make([]models.ChapterVerse, len(verses))
	for i, v := range verses {
		key := v.Key()
		out[i] = models.ChapterVerse{
			Verse:       v,
			Key:         key,
			Highlighted: annotations.IsHighlighted(key),
			HasNote:     annotations.HasNote(key),
		}
	}
	return models.ChapterResponse{Book: book, Chapter: chapter, Verses: out}
}

// OpenNote opens the note editor on a verse, prefilled with its saved
// note. Opening while already open retargets the editor.
func (s *StudySession) OpenNote(book string, chapter, verse int) (models.NoteEditorState, error) {
	if _, ok := s.store.Lookup(book, chapter, verse); !ok {
		return models.NoteEditorState{}, fmt.Errorf("%w: %s", ErrVerseNotFound, models.FormatReference(book, chapter, verse))
	}

	key := models.NewVerseKey(book, chapter, verse)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.editor = models.NoteEditorState{
		Open:      true,
		Key:       key,
		Reference: models.FormatReference(book, chapter, verse),
		Text:      s.annotations.Note(key),
	}
	return s.editor, nil
}

// EditNote replaces the draft text of the open editor
func (s *StudySession) EditNote(text string) (models.NoteEditorState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editor.Open {
		return models.NoteEditorState{}, ErrEditorClosed
	}
	s.editor.Text = text
	return s.editor, nil
}

// SaveNote closes the editor and commits the draft to the annotation store.
// The commit runs outside the session lock.
func (s *StudySession) SaveNote(ctx context.Context) (models.NoteResponse, error) {
	s.mu.Lock()
	if !s.editor.Open {
		s.mu.Unlock()
		return models.NoteResponse{}, ErrEditorClosed
	}
	ed := s.editor
	s.editor = models.NoteEditorState{}
	s.mu.Unlock()

	s.annotations.SetNote(ctx, ed.Key, ed.Text)
	return models.NoteResponse{Key: ed.Key, Reference: ed.Reference, Text: s.annotations.Note(ed.Key)}, nil
}

// CancelNote discards the draft and closes the editor
func (s *StudySession) CancelNote() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editor.Open {
		return ErrEditorClosed
	}
	s.editor = models.NoteEditorState{}
	return nil
}

// BeginExplanation marks the panel loading and returns the sequence
// number of the new request.
func (s *StudySession) BeginExplanation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.explainSeq++
	s.explainLoading = true
	return s.explainSeq
}

// CompleteExplanation displays exp if seq is the newest request issued.
// Stale resolutions are discarded and reported as false.
func (s *StudySession) CompleteExplanation(seq uint64, exp models.Explanation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.explainSeq {
		return false
	}
	s.explainLoading = false
	s.explanation = &exp
	return true
}

// RequestExplanation fetches an explanation of a verse and displays it
// unless a newer request was issued meanwhile. An unknown verse leaves the
// panel untouched and returns ErrVerseNotFound.
func (s *StudySession) RequestExplanation(ctx context.Context, book string, chapter, verse int) (models.Explanation, bool, error) {
	if _, ok := s.store.Lookup(book, chapter, verse); !ok {
		return models.Explanation{}, false, fmt.Errorf("%w: %s", ErrVerseNotFound, models.FormatReference(book, chapter, verse))
	}

	seq := s.BeginExplanation()
	exp := s.explainer.Explain(ctx, book, chapter, verse)
	return exp, s.CompleteExplanation(seq, exp), nil
}

// AddExplanationToNotes appends the displayed explanation to the note of
// its verse.
func (s *StudySession) AddExplanationToNotes(ctx context.Context) (models.NoteResponse, error) {
	s.mu.Lock()
	exp := s.explanation
	s.mu.Unlock()

	if exp == nil {
		return models.NoteResponse{}, ErrNoExplanation
	}

	book, chapter, verse, err := models.ParseReference(exp.Reference)
	if err != nil {
		return models.NoteResponse{}, fmt.Errorf("parse explanation reference: %w", err)
	}
	if _, ok := s.store.Lookup(book, chapter, verse); !ok {
		return models.NoteResponse{}, fmt.Errorf("%w: %s", ErrVerseNotFound, exp.Reference)
	}
	key := models.NewVerseKey(book, chapter, verse)

	s.annotations.AppendNote(ctx, key, fmt.Sprintf("AI insight for %s\n\n%s", exp.Reference, exp.Text))
	return models.NoteResponse{Key: key, Reference: exp.Reference, Text: s.annotations.Note(key)}, nil
}

// ExportNotes renders every note in export form
func (s *StudySession) ExportNotes() string {
	return s.annotations.Export(s.store.BookIndex)
}

// Snapshot returns the current view state
func (s *StudySession) Snapshot() models.StudyState {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := ChapterView(s.store, s.annotations, s.book, s.chapter)
	state := models.StudyState{
		Book:          s.book,
		Chapter:       s.chapter,
		Books:         s.store.Summaries(),
		Verses:        view.Verses,
		FontSize:      s.fontSize,
		Theme:         s.theme,
		SearchTerm:    s.searchTerm,
		SearchResults: slices.Clone(s.searchResults),
		NoteEditor:    s.editor,
		Explanation:   models.ExplanationState{Loading: s.explainLoading},
	}
	if s.explanation != nil {
		exp := *s.explanation
		state.Explanation.Current = &exp
	}
	return state
}
