package memory

import (
	"context"
	"sync"
	"time"

	"frontdesk/internal/app/snapshot"
)

// Source serves fixed collections; demo and test runs use it in place of the
// PMS client.
type Source struct {
	mu   sync.RWMutex
	cols snapshot.Collections
	Now  func() time.Time
}

func NewSource(cols snapshot.Collections) *Source {
	return &Source{cols: cols}
}

func (s *Source) FetchCollections(ctx context.Context) (snapshot.Collections, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cols := s.cols
	if cols.FetchedAt.IsZero() {
		cols.FetchedAt = s.now()
	}
	return cols, nil
}

// Replace swaps the served collections; the next refresh picks them up.
func (s *Source) Replace(cols snapshot.Collections) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cols = cols
}

func (s *Source) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

var _ snapshot.Source = (*Source)(nil)
