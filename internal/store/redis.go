// internal/store/redis.go
//
// Redis-backed round store: JSON values under a key prefix. With WithTTL
// every save refreshes the expiry, so abandoned rounds disappear.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces session keys.
const DefaultPrefix = "wordle:session:"

// Redis stores sessions as JSON strings, one key per session.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type RedisOption func(*Redis)

// WithTTL expires idle sessions; every Save refreshes the expiry.
func WithTTL(ttl time.Duration) RedisOption {
	return func(r *Redis) { r.ttl = ttl }
}

func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// NewRedis wraps an existing client.
func NewRedis(client *backend.Client, opts ...RedisOption) *Redis {
	r := &Redis{client: client, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) key(id string) string { return r.prefix + id }

func (r *Redis) Save(ctx context.Context, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("store: marshal session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("store: redis set: %w", err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, id string) (Session, error) {
	val, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return Session{}, ErrNotFound
		}
		return Session{}, fmt.Errorf("store: redis get: %w", err)
	}
	var s Session
	if err := json.Unmarshal(val, &s); err != nil {
		return Session{}, fmt.Errorf("store: unmarshal session: %w", err)
	}
	return s, nil
}

func (r *Redis) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.key(id)).Err()
}
