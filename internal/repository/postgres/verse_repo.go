package postgres

import (
	"context"
	"fmt"

	"github.com/asv-bible-study-api/internal/models"
	"github.com/asv-bible-study-api/internal/repository"
	"github.com/jmoiron/sqlx"
)

// Ensure VerseRepository implements repository.VerseRepository
var _ repository.VerseRepository = (*VerseRepository)(nil)

// VerseRepository implements repository.VerseRepository for PostgreSQL
type VerseRepository struct {
	db *sqlx.DB
}

// NewVerseRepository creates a new PostgreSQL verse repository
func NewVerseRepository(db *sqlx.DB) *VerseRepository {
	return &VerseRepository{db: db}
}

// ListVerses returns the whole corpus in canonical order
func (r *VerseRepository) ListVerses(ctx context.Context) ([]models.Verse, error) {
	var verses []models.Verse
	if err := r.db.SelectContext(ctx, &verses, `
		SELECT book, chapter, verse, text
		FROM verses
		ORDER BY book_order, chapter, verse
	`); err != nil {
		return nil, fmt.Errorf("list verses: %w", err)
	}

	if verses == nil {
		verses = []models.Verse{}
	}
	return verses, nil
}

// UpsertVerses writes verses in a single transaction. Book order follows
// the first appearance of each book in the slice.
func (r *VerseRepository) UpsertVerses(ctx context.Context, verses []models.Verse) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO verses (book, book_order, chapter, verse, text)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (book, chapter, verse) DO UPDATE
		SET text = EXCLUDED.text, book_order = EXCLUDED.book_order
	`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	order := make(map[string]int)
	for _, v := range verses {
		idx, ok := order[v.Book]
		if !ok {
			idx = len(order)
			order[v.Book] = idx
		}
		if _, err := stmt.ExecContext(ctx, v.Book, idx, v.Chapter, v.Verse, v.Text); err != nil {
			return fmt.Errorf("upsert %s: %w", v.Reference(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
