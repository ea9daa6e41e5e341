package services

import (
	"errors"
	"iter"
	"slices"

	"github.com/asv-bible-study-api/internal/models"
)

// ErrVerseNotFound is returned when a book/chapter/verse is not in the corpus
var ErrVerseNotFound = errors.New("verse not found")

type chapterText struct {
	number int
	verses []models.Verse
	index  map[int]int
}

type bookText struct {
	name     string
	chapters []*chapterText
	index    map[int]*chapterText
}

// VerseStore is the read-only verse corpus. It is built once and never
// mutated, so it may be shared freely between goroutines.
type VerseStore struct {
	books []*bookText
	index map[string]*bookText
}

// NewVerseStore builds a store from verses. Books keep the order of their
// first appearance; chapters and verses are sorted numerically. Duplicate
// triples keep the first text and non-positive numbers are skipped.
func NewVerseStore(verses []models.Verse) *VerseStore {
	s := &VerseStore{index: make(map[string]*bookText)}

	for _, v := range verses {
		if v.Book == "" || v.Chapter < 1 || v.Verse < 1 {
			continue
		}

		b, ok := s.index[v.Book]
		if !ok {
			b = &bookText{name: v.Book, index: make(map[int]*chapterText)}
			s.index[v.Book] = b
			s.books = append(s.books, b)
		}

		c, ok := b.index[v.Chapter]
		if !ok {
			c = &chapterText{number: v.Chapter, index: make(map[int]int)}
			b.index[v.Chapter] = c
			b.chapters = append(b.chapters, c)
		}

		if _, dup := c.index[v.Verse]; dup {
			continue
		}
		c.index[v.Verse] = len(c.verses)
		c.verses = append(c.verses, v)
	}

	for _, b := range s.books {
		slices.SortFunc(b.chapters, func(x, y *chapterText) int { return x.number - y.number })
		for _, c := range b.chapters {
			slices.SortFunc(c.verses, func(x, y models.Verse) int { return x.Verse - y.Verse })
			for i, v := range c.verses {
				c.index[v.Verse] = i
			}
		}
	}

	return s
}

// Lookup returns the text of a verse
func (s *VerseStore) Lookup(book string, chapter, verse int) (string, bool) {
	c := s.chapter(book, chapter)
	if c == nil {
		return "", false
	}
	i, ok := c.index[verse]
	if !ok {
		return "", false
	}
	return c.verses[i].Text, true
}

// Books returns book names in corpus order
func (s *VerseStore) Books() []string {
	names := make([]string, len(s.books))
	for i, b := range s.books {
		names[i] = b.name
	}
	return names
}

// BookIndex returns the corpus position of a book
func (s *VerseStore) BookIndex(book string) (int, bool) {
	for i, b := range s.books {
		if b.name == book {
			return i, true
		}
	}
	return 0, false
}

// Chapters returns the chapter numbers of a book in ascending order
func (s *VerseStore) Chapters(book string) []int {
	b, ok := s.index[book]
	if !ok {
		return []int{}
	}
	nums := make([]int, len(b.chapters))
	for i, c := range b.chapters {
		nums[i] = c.number
	}
	return nums
}

// MaxChapter returns the highest chapter number of a book, or 0
func (s *VerseStore) MaxChapter(book string) int {
	b, ok := s.index[book]
	if !ok || len(b.chapters) == 0 {
		return 0
	}
	return b.chapters[len(b.chapters)-1].number
}

// Verses returns the verses of a chapter in order
func (s *VerseStore) Verses(book string, chapter int) []models.Verse {
	c := s.chapter(book, chapter)
	if c == nil {
		return []models.Verse{}
	}
	return slices.Clone(c.verses)
}

// Summaries lists every book with its chapters
func (s *VerseStore) Summaries() []models.BookSummary {
	out := make([]models.BookSummary, len(s.books))
	for i, b := range s.books {
		out[i] = models.BookSummary{Name: b.name, Chapters: s.Chapters(b.name)}
	}
	return out
}

// All iterates every verse in (book, chapter, verse) order
func (s *VerseStore) All() iter.Seq[models.Verse] {
	return func(yield func(models.Verse) bool) {
		for _, b := range s.books {
			for _, c := range b.chapters {
				for _, v := range c.verses {
					if !yield(v) {
						return
					}
				}
			}
		}
	}
}

// Len returns the number of verses
func (s *VerseStore) Len() int {
	n := 0
	for _, b := range s.books {
		for _, c := range b.chapters {
			n += len(c.verses)
		}
	}
	return n
}

func (s *VerseStore) chapter(book string, chapter int) *chapterText {
	b, ok := s.index[book]
	if !ok {
		return nil
	}
	return b.index[chapter]
}
