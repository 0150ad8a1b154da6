package memory

import (
	"context"
	"sync"
	"time"

	"frontdesk/internal/app/middleware"
)

// IdempotencyStore keeps command outcomes in memory. Used when no redis is
// configured; keys survive only as long as the process.
type IdempotencyStore struct {
	mu    sync.RWMutex
	items map[string]middleware.IdempotencyRecord
	TTL   time.Duration
	Now   func() time.Time
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{
		items: make(map[string]middleware.IdempotencyRecord),
		TTL:   ttl,
	}
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (middleware.IdempotencyRecord, bool, error) {
	s.mu.RLock()
	rec, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return middleware.IdempotencyRecord{}, false, nil
	}
	if s.TTL > 0 && s.now().Sub(rec.OccurredAt) > s.TTL {
		s.mu.Lock()
		delete(s.items, key)
		s.mu.Unlock()
		return middleware.IdempotencyRecord{}, false, nil
	}
	return rec, true, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, rec middleware.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[rec.Key] = rec
	return nil
}

func (s *IdempotencyStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

var _ middleware.IdempotencyStore = (*IdempotencyStore)(nil)
