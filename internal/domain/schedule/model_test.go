package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var buildNow = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func testRooms() []RoomRecord {
	return []RoomRecord{
		{ID: "room-2", Name: "Sea View", StructureID: "villa-1", PropertyTypeID: "double"},
		{ID: "room-1", Name: "Garden", StructureID: "villa-1", PropertyTypeID: "single"},
	}
}

func TestBuildModelSortsRoomsAndIntervals(t *testing.T) {
	bookings := []BookingRecord{
		{ID: "b-2", RoomID: "room-1", CheckIn: "2025-01-20", CheckOut: "2025-01-22", GuestName: "Novak", Platform: "booking"},
		{ID: "b-1", RoomID: "room-1", CheckIn: "2025-01-10", CheckOut: "2025-01-15", GuestName: "Petrov", Platform: "airbnb"},
	}
	m, report := BuildModel(testRooms(), bookings, nil, buildNow)
	require.True(t, report.Clean())

	rooms := m.Rooms()
	require.Len(t, rooms, 2)
	require.Equal(t, RoomID("room-1"), rooms[0].ID)
	require.Equal(t, RoomID("room-2"), rooms[1].ID)

	ivs := m.BookingsFor("room-1")
	require.Len(t, ivs, 2)
	require.Equal(t, BookingID("b-1"), ivs[0].ID)
	require.Equal(t, BookingID("b-2"), ivs[1].ID)
}

func TestBuildModelDropsMalformedRecords(t *testing.T) {
	bookings := []BookingRecord{
		{ID: "b-good", RoomID: "room-1", CheckIn: "2025-01-10", CheckOut: "2025-01-12"},
		{ID: "b-bad-date", RoomID: "room-1", CheckIn: "not-a-date", CheckOut: "2025-01-12"},
		{ID: "b-inverted", RoomID: "room-1", CheckIn: "2025-01-12", CheckOut: "2025-01-10"},
		{ID: "b-zero-nights", RoomID: "room-1", CheckIn: "2025-01-12", CheckOut: "2025-01-12"},
	}
	blocks := []BlockRecord{
		{ID: "bl-good", RoomID: "room-2", StartDate: "2025-02-01", EndDate: "2025-02-03"},
		{ID: "bl-single-day", RoomID: "room-2", StartDate: "2025-02-10", EndDate: "2025-02-10"},
		{ID: "bl-inverted", RoomID: "room-2", StartDate: "2025-02-05", EndDate: "2025-02-04"},
	}

	m, report := BuildModel(testRooms(), bookings, blocks, buildNow)

	require.Len(t, m.BookingsFor("room-1"), 1)
	// A block may cover a single day; only inverted ranges are dropped.
	require.Len(t, m.BlocksFor("room-2"), 2)

	require.Len(t, report.Dropped, 4)
	dropped := map[string]string{}
	for _, w := range report.Dropped {
		dropped[w.ID] = w.Kind
	}
	require.Equal(t, "booking", dropped["b-bad-date"])
	require.Equal(t, "booking", dropped["b-inverted"])
	require.Equal(t, "booking", dropped["b-zero-nights"])
	require.Equal(t, "block", dropped["bl-inverted"])
}

func TestBuildModelFlagsOverlaps(t *testing.T) {
	bookings := []BookingRecord{
		{ID: "b-1", RoomID: "room-1", CheckIn: "2025-01-10", CheckOut: "2025-01-15"},
		{ID: "b-2", RoomID: "room-1", CheckIn: "2025-01-14", CheckOut: "2025-01-18"},
		// Back-to-back with b-2: shared calendar day but no shared night.
		{ID: "b-3", RoomID: "room-1", CheckIn: "2025-01-18", CheckOut: "2025-01-20"},
	}
	m, report := BuildModel(testRooms(), bookings, nil, buildNow)

	require.Len(t, report.Overlaps, 1)
	require.Equal(t, RoomID("room-1"), report.Overlaps[0].RoomID)
	require.Equal(t, "b-1", report.Overlaps[0].First)
	require.Equal(t, "b-2", report.Overlaps[0].Second)

	// Overlapping intervals still render; degradation is report-only.
	require.Len(t, m.BookingsFor("room-1"), 3)

	evs := m.PendingEvents()
	require.Len(t, evs, 1)
	require.Equal(t, "schedule.overlap_detected", evs[0].EventName())
}

func TestBuildModelFlagsEveryOverlapPair(t *testing.T) {
	// b-1 spans both later bookings; both pairs must be named, not just the
	// neighbouring one.
	bookings := []BookingRecord{
		{ID: "b-1", RoomID: "room-1", CheckIn: "2025-01-01", CheckOut: "2025-01-10"},
		{ID: "b-2", RoomID: "room-1", CheckIn: "2025-01-02", CheckOut: "2025-01-03"},
		{ID: "b-3", RoomID: "room-1", CheckIn: "2025-01-04", CheckOut: "2025-01-05"},
	}
	_, report := BuildModel(testRooms(), bookings, nil, buildNow)

	require.Len(t, report.Overlaps, 2)
	pairs := map[[2]string]bool{}
	for _, w := range report.Overlaps {
		require.Equal(t, RoomID("room-1"), w.RoomID)
		pairs[[2]string{w.First, w.Second}] = true
	}
	require.True(t, pairs[[2]string{"b-1", "b-2"}])
	require.True(t, pairs[[2]string{"b-1", "b-3"}])
}

func TestBuildModelFlagsBookingBlockOverlap(t *testing.T) {
	bookings := []BookingRecord{
		{ID: "b-1", RoomID: "room-1", CheckIn: "2025-01-10", CheckOut: "2025-01-15"},
	}
	blocks := []BlockRecord{
		// Covers the night of the 14th, which b-1 also claims.
		{ID: "bl-1", RoomID: "room-1", StartDate: "2025-01-14", EndDate: "2025-01-16"},
		// Starts on the checkout day: the 15th is not a booked night, no overlap.
		{ID: "bl-2", RoomID: "room-2", StartDate: "2025-01-15", EndDate: "2025-01-16"},
	}
	_, report := BuildModel(testRooms(), bookings, blocks, buildNow)

	require.Len(t, report.Overlaps, 1)
	require.Equal(t, "b-1", report.Overlaps[0].First)
	require.Equal(t, "bl-1", report.Overlaps[0].Second)
}

func TestBuildModelBlockStartingOnCheckoutDayIsClean(t *testing.T) {
	bookings := []BookingRecord{
		{ID: "b-1", RoomID: "room-1", CheckIn: "2025-01-10", CheckOut: "2025-01-15"},
	}
	blocks := []BlockRecord{
		{ID: "bl-1", RoomID: "room-1", StartDate: "2025-01-15", EndDate: "2025-01-17"},
	}
	_, report := BuildModel(testRooms(), bookings, blocks, buildNow)
	require.True(t, report.Clean())
}

func TestLookupsByID(t *testing.T) {
	bookings := []BookingRecord{
		{ID: "b-1", RoomID: "room-1", CheckIn: "2025-01-10", CheckOut: "2025-01-15"},
	}
	blocks := []BlockRecord{
		{ID: "bl-1", RoomID: "room-2", StartDate: "2025-02-01", EndDate: "2025-02-03", Reason: "maintenance"},
	}
	m, _ := BuildModel(testRooms(), bookings, blocks, buildNow)

	b, ok := m.Booking("b-1")
	require.True(t, ok)
	require.Equal(t, RoomID("room-1"), b.RoomID)

	_, ok = m.Booking("missing")
	require.False(t, ok)

	bl, ok := m.Block("bl-1")
	require.True(t, ok)
	require.Equal(t, "maintenance", bl.Reason)

	room, ok := m.Room("room-2")
	require.True(t, ok)
	require.Equal(t, "Sea View", room.Name)
}
