package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/asv-bible-study-api/internal/models"
)

// voiceBooks is the spoken vocabulary in match priority order
var voiceBooks = []struct {
	spoken string
	name   string
}{
	{"matthew", "Matthew"},
	{"mark", "Mark"},
	{"luke", "Luke"},
	{"john", "John"},
}

// canonicalChapters holds the chapter counts of the voice vocabulary
var canonicalChapters = map[string]int{
	"Matthew": 28,
	"Mark":    16,
	"Luke":    24,
	"John":    21,
}

var (
	chapterAfter  = regexp.MustCompile(`\bchapter\s+(\d+)\b`)
	chapterBefore = regexp.MustCompile(`\b(\d+)(?:st|nd|rd|th)?\s+chapter\b`)
)

// ChapterCounter reports how many chapters a book has; 0 means unknown
type ChapterCounter func(book string) int

// CanonicalChapterCount returns the real chapter count of the gospels and
// defers to fallback for any other book.
func CanonicalChapterCount(fallback ChapterCounter) ChapterCounter {
	return func(book string) int {
		if n, ok := canonicalChapters[book]; ok {
			return n
		}
		if fallback != nil {
			return fallback(book)
		}
		return 0
	}
}

// ParseVoiceCommand extracts a navigation target from a transcript. The
// first vocabulary book found anywhere in the transcript wins. A number
// next to the word "chapter" is adopted only when it lies within the
// chapter range of the resolved book, or of currentBook when no book was
// spoken. Unresolved fields are left nil.
func ParseVoiceCommand(transcript, currentBook string, chapters ChapterCounter) models.VoiceCommand {
	t := strings.ToLower(transcript)

	var cmd models.VoiceCommand
	for _, b := range voiceBooks {
		if strings.Contains(t, b.spoken) {
			name := b.name
			cmd.Book = &name
			break
		}
	}

	target := currentBook
	if cmd.Book != nil {
		target = *cmd.Book
	}

	if n, ok := spokenChapter(t); ok && chapters != nil {
		if limit := chapters(target); n >= 1 && n <= limit {
			cmd.Chapter = &n
		}
	}

	return cmd
}

func spokenChapter(t string) (int, bool) {
	for _, re := range []*regexp.Regexp{chapterAfter, chapterBefore} {
		if m := re.FindStringSubmatch(t); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			return n, true
		}
	}
	return 0, false
}

// SpeechCapability reports whether speech input is available. When it is
// not, voice routes are not registered at all.
type SpeechCapability interface {
	Supported() bool
}

// StaticSpeech is a fixed capability answer
type StaticSpeech bool

// Supported implements SpeechCapability
func (s StaticSpeech) Supported() bool { return bool(s) }

// NoSpeech is the capability of environments without speech input
var NoSpeech SpeechCapability = StaticSpeech(false)
