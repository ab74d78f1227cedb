// internal/store/redis.go
//
// Redis implementation of Store.
// Used when rounds must survive a restart or be shared between server replicas.
//
// Characteristics:
//   - Rounds are stored as JSON under prefix+ID.
//   - Every Save refreshes the TTL, so only idle rounds expire.
//   - Missing or expired keys map to ErrNotFound.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/robalobadob/evilhangman/internal/game"
)

// redisStore keeps rounds as JSON values, expiring idle rounds after ttl.
type redisStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// RedisOption configures a Redis store built by NewRedisStore.
type RedisOption func(*redisStore)

// WithTTL sets how long an untouched round survives. Zero disables expiry.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *redisStore) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for rounds.
func WithPrefix(prefix string) RedisOption {
	return func(s *redisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a Redis-backed Store from an existing client.
func NewRedisStore(client *backend.Client, opts ...RedisOption) Store {
	s := &redisStore{
		client: client,
		prefix: "evilhangman:round:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *redisStore) key(id string) string {
	return s.prefix + id
}

func (s *redisStore) Save(ctx context.Context, r *game.Round) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal round: %w", err)
	}
	if err := s.client.Set(ctx, s.key(r.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save round to redis: %w", err)
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, id string) (*game.Round, error) {
	val, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load round from redis: %w", err)
	}
	var r game.Round
	if err := json.Unmarshal(val, &r); err != nil {
		return nil, fmt.Errorf("unmarshal round: %w", err)
	}
	return &r, nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete round from redis: %w", err)
	}
	return nil
}
