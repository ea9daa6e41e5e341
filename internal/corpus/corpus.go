// Package corpus decodes verse corpora from the ordered JSON form used by
// the embedded ASV sample and by VERSE_DATA_PATH files:
//
//	[{"book": "Matthew", "chapters": [{"chapter": 1, "verses": [{"verse": 1, "text": "..."}]}]}]
package corpus

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/asv-bible-study-api/internal/models"
)

//go:embed asv.json
var embeddedASV []byte

type bookEntry struct {
	Book     string         `json:"book"`
	Chapters []chapterEntry `json:"chapters"`
}

type chapterEntry struct {
	Chapter int          `json:"chapter"`
	Verses  []verseEntry `json:"verses"`
}

type verseEntry struct {
	Verse int    `json:"verse"`
	Text  string `json:"text"`
}

// Embedded returns the ASV sample corpus compiled into the binary
func Embedded() ([]models.Verse, error) {
	return Decode(bytes.NewReader(embeddedASV))
}

// LoadFile decodes a corpus file
func LoadFile(path string) ([]models.Verse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a corpus in document order
func Decode(r io.Reader) ([]models.Verse, error) {
	var books []bookEntry
	if err := json.NewDecoder(r).Decode(&books); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}

	var verses []models.Verse
	for _, b := range books {
		for _, c := range b.Chapters {
			for _, v := range c.Verses {
				verses = append(verses, models.Verse{
					Book:    b.Book,
					Chapter: c.Chapter,
					Verse:   v.Verse,
					Text:    v.Text,
				})
			}
		}
	}
	return verses, nil
}
