package schedule

import (
	"time"

	"frontdesk/internal/domain/shared/daterange"
)

type (
	RoomID         string
	StructureID    string
	PropertyTypeID string
	BookingID      string
	BlockID        string
	Platform       string
)

// Room is read-only reference data owned by the external property service.
type Room struct {
	ID           RoomID
	Name         string
	Structure    StructureID
	PropertyType PropertyTypeID
}

// BookingInterval occupies the half-open night range [CheckIn, CheckOut).
// The grid still paints the checkout day's cell, see Occupancy.
type BookingInterval struct {
	ID         BookingID
	RoomID     RoomID
	Range      daterange.DateRange
	GuestLabel string
	Platform   Platform
}

// BlockedInterval closes [Start, End] inclusive; a single-day block has
// Start == End.
type BlockedInterval struct {
	ID     BlockID
	RoomID RoomID
	Start  time.Time
	End    time.Time
	Reason string
}

func (b BlockedInterval) ContainsDate(t time.Time) bool {
	t = daterange.Day(t)
	return !t.Before(b.Start) && !t.After(b.End)
}

// RoomRecord, BookingRecord and BlockRecord mirror the collection shapes the
// external property-management service exposes. Dates are ISO yyyy-MM-dd
// strings and are validated during the model build.
type RoomRecord struct {
	ID             string
	Name           string
	StructureID    string
	PropertyTypeID string
}

type BookingRecord struct {
	ID        string
	RoomID    string
	CheckIn   string
	CheckOut  string
	GuestName string
	Platform  string
}

type BlockRecord struct {
	ID        string
	RoomID    string
	StartDate string
	EndDate   string
	Reason    string
}
