// Package storage opens the durable key-value backend selected by
// STORAGE_BACKEND.
package storage

import (
	"context"
	"fmt"

	"github.com/asv-bible-study-api/internal/repository"
	"github.com/asv-bible-study-api/internal/repository/memory"
	"github.com/asv-bible-study-api/internal/repository/postgres"
	"github.com/asv-bible-study-api/internal/repository/redis"
	"github.com/asv-bible-study-api/internal/repository/sqlite"
	"github.com/asv-bible-study-api/pkg/schema/config"
	"github.com/asv-bible-study-api/pkg/schema/db"
)

// Backend names
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Open returns the configured store and a function releasing it. The
// postgres backend shares the db package singleton, closed by
// db.ClosePostgres.
func Open(ctx context.Context, cfg *config.Config) (repository.KeyValueStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageBackend {
	case BackendMemory:
		return memory.NewKeyValueRepository(), noop, nil
	case BackendPostgres:
		if err := db.InitPostgres(ctx); err != nil {
			return nil, nil, err
		}
		return postgres.NewKeyValueRepository(db.GetPostgres()), noop, nil
	case BackendRedis:
		r := redis.NewKeyValueRepository(redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err := r.Ping(ctx); err != nil {
			_ = r.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return r, r.Close, nil
	case BackendSQLite, "":
		conn, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		r := sqlite.NewKeyValueRepository(conn)
		return r, r.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
