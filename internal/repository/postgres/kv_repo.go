package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/asv-bible-study-api/internal/repository"
	"github.com/jmoiron/sqlx"
)

// Ensure KeyValueRepository implements repository.KeyValueStore
var _ repository.KeyValueStore = (*KeyValueRepository)(nil)

// KeyValueRepository implements repository.KeyValueStore for PostgreSQL
type KeyValueRepository struct {
	db *sqlx.DB
}

// NewKeyValueRepository creates a new PostgreSQL key-value repository
func NewKeyValueRepository(db *sqlx.DB) *KeyValueRepository {
	return &KeyValueRepository{db: db}
}

// Get returns the value stored under key
func (r *KeyValueRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, `SELECT value FROM study_kv WHERE key = $1`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("get value %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key
func (r *KeyValueRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO study_kv (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("set value %q: %w", key, err)
	}
	return nil
}

// Ping verifies the database is reachable
func (r *KeyValueRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
