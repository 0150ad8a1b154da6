// Package snapshot owns the engine's view of upstream state: the room
// collection, the date axis and the interval model. Queries read an immutable
// view; a refresh builds a whole new view and swaps it atomically, so a read
// in progress never observes a partially updated model.
package snapshot

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"frontdesk/internal/app/outbox"
	"frontdesk/internal/domain/schedule"
	"frontdesk/internal/domain/timeline"
)

var ErrNotLoaded = errors.New("snapshot: no view loaded yet")

// Collections are the raw room/booking/blocked-date lists fetched from the
// property-management service.
type Collections struct {
	Rooms     []schedule.RoomRecord
	Bookings  []schedule.BookingRecord
	Blocks    []schedule.BlockRecord
	FetchedAt time.Time
}

// Source fetches the collections. Implementations: the PMS HTTP client, the
// mongo fallback cache, the in-memory fixture source.
type Source interface {
	FetchCollections(ctx context.Context) (Collections, error)
}

// View is one consistent, immutable snapshot.
type View struct {
	Model     *schedule.Model
	Axis      timeline.DateAxis
	FetchedAt time.Time
}

// Store holds the current view and rebuilds it from the source on demand.
type Store struct {
	Source      Source
	HorizonDays int
	Logger      *slog.Logger
	Outbox      outbox.Outbox
	Encoder     outbox.EventEncoder
	Now         func() time.Time

	current atomic.Pointer[View]
}

// Refresh fetches the collections, rebuilds the model and axis, and swaps
// the view in. Build warnings (dropped records, overlapping intervals) are
// logged and published, never fatal: bad upstream data degrades the grid, it
// does not blank it.
func (s *Store) Refresh(ctx context.Context) error {
	if s.Source == nil {
		return errors.New("snapshot: source not configured")
	}
	cols, err := s.Source.FetchCollections(ctx)
	if err != nil {
		return err
	}
	now := s.now()
	model, report := schedule.BuildModel(cols.Rooms, cols.Bookings, cols.Blocks, now)
	s.logReport(report)

	if s.Outbox != nil {
		evs := model.PendingEvents()
		model.ClearEvents()
		if err := outbox.RecordDomainEvents(ctx, s.Outbox, s.Encoder, evs); err != nil {
			s.log().Warn("snapshot: recording build events failed", "error", err)
		}
	}

	horizon := s.HorizonDays
	if horizon <= 0 {
		horizon = 365
	}
	axis, err := timeline.NewAxis(now, horizon)
	if err != nil {
		return err
	}
	fetchedAt := cols.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = now
	}
	s.current.Store(&View{Model: model, Axis: axis, FetchedAt: fetchedAt})
	return nil
}

// View returns the current snapshot. ErrNotLoaded before the first
// successful refresh.
func (s *Store) View() (*View, error) {
	v := s.current.Load()
	if v == nil {
		return nil, ErrNotLoaded
	}
	return v, nil
}

// Loaded reports whether at least one refresh has succeeded; used by the
// readiness probe.
func (s *Store) Loaded() bool {
	return s.current.Load() != nil
}

func (s *Store) logReport(report schedule.BuildReport) {
	if report.Clean() {
		return
	}
	log := s.log()
	for _, drop := range report.Dropped {
		log.Warn("snapshot: record dropped", "kind", drop.Kind, "id", drop.ID, "reason", drop.Reason)
	}
	for _, ov := range report.Overlaps {
		log.Warn("snapshot: overlapping intervals", "room_id", ov.RoomID, "first", ov.First, "second", ov.Second)
	}
}

func (s *Store) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
