package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/asv-bible-study-api/internal/repository"
	"github.com/redis/go-redis/v9"
)

// Ensure KeyValueRepository implements repository.KeyValueStore
var _ repository.KeyValueStore = (*KeyValueRepository)(nil)

// Config holds the Redis connection settings
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// KeyValueRepository implements repository.KeyValueStore for Redis.
// Values are stored without expiry.
type KeyValueRepository struct {
	rdb    *redis.Client
	prefix string
}

// NewKeyValueRepository creates a new Redis key-value repository
func NewKeyValueRepository(cfg Config) *KeyValueRepository {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &KeyValueRepository{
		rdb:    rdb,
		prefix: cfg.Prefix,
	}
}

// Get returns the value stored under key
func (r *KeyValueRepository) Get(ctx context.Context, key string) (string, error) {
	val, err := r.rdb.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("get value %q: %w", key, err)
	}
	return val, nil
}

// Set stores value under key
func (r *KeyValueRepository) Set(ctx context.Context, key, value string) error {
	if err := r.rdb.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("set value %q: %w", key, err)
	}
	return nil
}

// Ping verifies the server is reachable
func (r *KeyValueRepository) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Close closes the client
func (r *KeyValueRepository) Close() error {
	return r.rdb.Close()
}
