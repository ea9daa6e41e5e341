package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidKey       = errors.New("invalid verse key")
	ErrInvalidReference = errors.New("invalid verse reference")
)

// Verse is a single addressable verse of the corpus
type Verse struct {
	Book    string `json:"book" db:"book"`
	Chapter int    `json:"chapter" db:"chapter"`
	Verse   int    `json:"verse" db:"verse"`
	Text    string `json:"text" db:"text"`
}

// Key returns the annotation key of the verse
func (v Verse) Key() VerseKey {
	return NewVerseKey(v.Book, v.Chapter, v.Verse)
}

// Reference returns the display reference of the verse
func (v Verse) Reference() string {
	return FormatReference(v.Book, v.Chapter, v.Verse)
}

// VerseKey joins annotations to a verse, e.g. "Matthew_1_1"
type VerseKey string

// NewVerseKey builds the key for a book/chapter/verse triple
func NewVerseKey(book string, chapter, verse int) VerseKey {
	return VerseKey(fmt.Sprintf("%s_%d_%d", book, chapter, verse))
}

// ParseVerseKey recovers the triple from a key. The book is everything
// before the last two underscore-separated fields, so book names may
// contain spaces but not underscores.
func ParseVerseKey(key VerseKey) (string, int, int, error) {
	s := string(key)

	vi := strings.LastIndexByte(s, '_')
	if vi <= 0 {
		return "", 0, 0, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	ci := strings.LastIndexByte(s[:vi], '_')
	if ci <= 0 {
		return "", 0, 0, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}

	chapter, err := parsePositive(s[ci+1 : vi])
	if err != nil {
		return "", 0, 0, fmt.Errorf("%w: %q: chapter: %v", ErrInvalidKey, s, err)
	}
	verse, err := parsePositive(s[vi+1:])
	if err != nil {
		return "", 0, 0, fmt.Errorf("%w: %q: verse: %v", ErrInvalidKey, s, err)
	}

	return s[:ci], chapter, verse, nil
}

// FormatReference renders "Book chapter:verse"
func FormatReference(book string, chapter, verse int) string {
	return fmt.Sprintf("%s %d:%d", book, chapter, verse)
}

// ParseReference is the inverse of FormatReference
func ParseReference(ref string) (string, int, int, error) {
	ref = strings.TrimSpace(ref)

	sp := strings.LastIndexByte(ref, ' ')
	if sp <= 0 {
		return "", 0, 0, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	chStr, vsStr, ok := strings.Cut(ref[sp+1:], ":")
	if !ok {
		return "", 0, 0, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}

	chapter, err := parsePositive(chStr)
	if err != nil {
		return "", 0, 0, fmt.Errorf("%w: %q: chapter: %v", ErrInvalidReference, ref, err)
	}
	verse, err := parsePositive(vsStr)
	if err != nil {
		return "", 0, 0, fmt.Errorf("%w: %q: verse: %v", ErrInvalidReference, ref, err)
	}

	return strings.TrimSpace(ref[:sp]), chapter, verse, nil
}

func parsePositive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("%d is not positive", n)
	}
	return n, nil
}

// ChapterVerse is a verse as rendered in a chapter view
type ChapterVerse struct {
	Verse
	Key         VerseKey `json:"key"`
	Highlighted bool     `json:"highlighted"`
	HasNote     bool     `json:"has_note"`
}

// BookSummary lists the chapters available for a book
type BookSummary struct {
	Name     string `json:"name"`
	Chapters []int  `json:"chapters"`
}

// ChapterResponse is the response for a chapter view
type ChapterResponse struct {
	Book    string         `json:"book"`
	Chapter int            `json:"chapter"`
	Verses  []ChapterVerse `json:"verses"`
}
