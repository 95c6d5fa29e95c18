// internal/store/redis.go
//
// Redis implementation of the Store interface.
// Each match is one JSON document under battleships:match:<id>, written
// with a single SET so a save is never partially visible. Idle matches
// expire after the configured TTL.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/robalobadob/battleships/internal/game"
)

const redisKeyPrefix = "battleships:match:"

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a Store over client. ttl <= 0 keeps matches forever.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	if ttl < 0 {
		ttl = 0
	}
	return &redisStore{client: client, ttl: ttl}
}

func redisKey(id string) string { return redisKeyPrefix + id }

func (s *redisStore) Load(ctx context.Context, id string) (*game.Match, error) {
	data, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load match %s: %w", id, err)
	}
	var m game.Match
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode match %s: %w", id, err)
	}
	return &m, nil
}

func (s *redisStore) Save(ctx context.Context, m *game.Match) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode match %s: %w", m.ID, err)
	}
	if err := s.client.Set(ctx, redisKey(m.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save match %s: %w", m.ID, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("delete match %s: %w", id, err)
	}
	return nil
}

func (s *redisStore) Exists(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, redisKey(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
