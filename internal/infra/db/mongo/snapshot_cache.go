package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"frontdesk/internal/app/snapshot"
	"frontdesk/internal/domain/schedule"
)

const snapshotDocID = "latest"

// CachedSource decorates the PMS source with a mongo-backed last-good copy.
// A successful fetch overwrites the cache; a failed fetch falls back to it,
// so a PMS outage degrades the grid to stale data instead of a blank page.
type CachedSource struct {
	Upstream snapshot.Source
	Logger   *slog.Logger

	col *mongo.Collection
}

func NewCachedSource(db *mongo.Database, upstream snapshot.Source, logger *slog.Logger) *CachedSource {
	return &CachedSource{
		Upstream: upstream,
		Logger:   logger,
		col:      db.Collection("frontdesk_snapshot"),
	}
}

type snapshotDocument struct {
	ID        string                   `bson:"_id"`
	Rooms     []schedule.RoomRecord    `bson:"rooms"`
	Bookings  []schedule.BookingRecord `bson:"bookings"`
	Blocks    []schedule.BlockRecord   `bson:"blocks"`
	FetchedAt time.Time                `bson:"fetched_at"`
}

func (s *CachedSource) FetchCollections(ctx context.Context) (snapshot.Collections, error) {
	if s.Upstream == nil {
		return snapshot.Collections{}, errors.New("snapshot cache: upstream source missing")
	}
	cols, err := s.Upstream.FetchCollections(ctx)
	if err == nil {
		s.store(ctx, cols)
		return cols, nil
	}

	cached, cacheErr := s.load(ctx)
	if cacheErr != nil {
		return snapshot.Collections{}, fmt.Errorf("upstream: %w (cache: %v)", err, cacheErr)
	}
	s.log().Warn("snapshot cache: serving stale collections",
		"fetched_at", cached.FetchedAt, "upstream_error", err)
	return cached, nil
}

func (s *CachedSource) store(ctx context.Context, cols snapshot.Collections) {
	doc := snapshotDocument{
		ID:        snapshotDocID,
		Rooms:     cols.Rooms,
		Bookings:  cols.Bookings,
		Blocks:    cols.Blocks,
		FetchedAt: cols.FetchedAt,
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.col.ReplaceOne(ctx, bson.M{"_id": snapshotDocID}, doc, opts); err != nil {
		s.log().Warn("snapshot cache: store failed", "error", err)
	}
}

func (s *CachedSource) load(ctx context.Context) (snapshot.Collections, error) {
	var doc snapshotDocument
	if err := s.col.FindOne(ctx, bson.M{"_id": snapshotDocID}).Decode(&doc); err != nil {
		return snapshot.Collections{}, err
	}
	return snapshot.Collections{
		Rooms:     doc.Rooms,
		Bookings:  doc.Bookings,
		Blocks:    doc.Blocks,
		FetchedAt: doc.FetchedAt,
	}, nil
}

func (s *CachedSource) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

var _ snapshot.Source = (*CachedSource)(nil)
