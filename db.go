// db.go
//
// Storage wiring for the server.
// Responsibilities:
//   - Opening SQLite (users, results, and optionally matches) and applying migrations.
//   - Selecting the match store backend from config (memory, sqlite, redis).

package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/battleships/internal/config"
	"github.com/robalobadob/battleships/internal/store"
)

// openDB opens the SQLite file and brings its schema up to date.
func openDB(ctx context.Context, path string) (*sql.DB, error) {
	db, err := store.OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// openMatchStore returns the configured match store and a func releasing it.
func openMatchStore(ctx context.Context, cfg config.Storage, db *sql.DB) (store.Store, func(), error) {
	noop := func() {}
	switch cfg.Driver {
	case config.DriverMemory:
		return store.NewMemoryStore(), noop, nil
	case config.DriverSQLite:
		return store.NewSQLiteStore(db), noop, nil
	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.RedisTTL).Msg("using redis match store")
		return store.NewRedisStore(client, cfg.RedisTTL), func() { _ = client.Close() }, nil
	}
	return nil, noop, fmt.Errorf("%w: storage driver %q", config.ErrInvalid, cfg.Driver)
}
