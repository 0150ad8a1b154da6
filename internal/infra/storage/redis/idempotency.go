// Package redis backs the idempotency middleware with a shared store, so a
// retried command replays the same outcome even across replicas or restarts.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"frontdesk/internal/app/middleware"
)

const keyPrefix = "frontdesk:idem:"

type IdempotencyStore struct {
	Client *goredis.Client
	TTL    time.Duration
}

func NewIdempotencyStore(addr string, ttl time.Duration) *IdempotencyStore {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	return &IdempotencyStore{Client: client, TTL: ttl}
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (middleware.IdempotencyRecord, bool, error) {
	var zero middleware.IdempotencyRecord
	if s.Client == nil {
		return zero, false, errors.New("redis: client not configured")
	}
	raw, err := s.Client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return zero, false, nil
		}
		return zero, false, err
	}
	var rec middleware.IdempotencyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return zero, false, err
	}
	return rec, true, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, rec middleware.IdempotencyRecord) error {
	if s.Client == nil {
		return errors.New("redis: client not configured")
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return s.Client.Set(ctx, keyPrefix+rec.Key, raw, ttl).Err()
}

func (s *IdempotencyStore) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx).Err()
}

func (s *IdempotencyStore) Close() error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Close()
}

var _ middleware.IdempotencyStore = (*IdempotencyStore)(nil)
