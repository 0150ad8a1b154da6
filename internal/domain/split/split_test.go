package split

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"frontdesk/internal/domain/schedule"
	"frontdesk/internal/domain/shared/daterange"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := daterange.ParseDay(s)
	require.NoError(t, err)
	return d
}

func booking(t *testing.T, checkIn, checkOut string) schedule.BookingInterval {
	t.Helper()
	r, err := daterange.New(day(t, checkIn), day(t, checkOut))
	require.NoError(t, err)
	return schedule.BookingInterval{
		ID:         "b-1",
		RoomID:     "room-1",
		Range:      r,
		GuestLabel: "Petrov",
		Platform:   "airbnb",
	}
}

func TestWindowBounds(t *testing.T) {
	b := booking(t, "2025-01-10", "2025-01-15")
	min, max, ok := Window(b)
	require.True(t, ok)
	require.Equal(t, day(t, "2025-01-11"), min)
	require.Equal(t, day(t, "2025-01-14"), max)
}

func TestWindowEmptyForOneNight(t *testing.T) {
	b := booking(t, "2025-01-10", "2025-01-11")
	_, _, ok := Window(b)
	require.False(t, ok)
}

func TestWindowTwoNights(t *testing.T) {
	b := booking(t, "2025-01-10", "2025-01-12")
	min, max, ok := Window(b)
	require.True(t, ok)
	require.Equal(t, min, max, "two nights leave exactly one legal date")
	require.Equal(t, day(t, "2025-01-11"), min)
}

func TestValidate(t *testing.T) {
	b := booking(t, "2025-01-10", "2025-01-15")

	require.NoError(t, Validate(b, day(t, "2025-01-11")))
	require.NoError(t, Validate(b, day(t, "2025-01-14")))

	require.ErrorIs(t, Validate(b, day(t, "2025-01-10")), ErrDateOutsideWindow)
	require.ErrorIs(t, Validate(b, day(t, "2025-01-15")), ErrDateOutsideWindow)
	require.ErrorIs(t, Validate(b, day(t, "2025-01-01")), ErrDateOutsideWindow)

	oneNight := booking(t, "2025-01-10", "2025-01-11")
	require.ErrorIs(t, Validate(oneNight, day(t, "2025-01-10")), ErrUnsplittable)
}

func TestNewPlanContiguousSegments(t *testing.T) {
	b := booking(t, "2025-01-10", "2025-01-15")

	plan, err := New(b, day(t, "2025-01-12"), "")
	require.NoError(t, err)

	require.Equal(t, b.ID, plan.Request.BookingID)
	require.Equal(t, day(t, "2025-01-12"), plan.Request.SplitDate)

	// Head ends where tail begins; together they cover the original nights.
	require.Equal(t, b.Range.CheckIn, plan.Head.Range.CheckIn)
	require.Equal(t, plan.Head.Range.CheckOut, plan.Tail.Range.CheckIn)
	require.Equal(t, b.Range.CheckOut, plan.Tail.Range.CheckOut)
	require.Equal(t, b.Range.Nights(), plan.Head.Range.Nights()+plan.Tail.Range.Nights())

	// Guest and platform carry over to both segments.
	require.Equal(t, b.GuestLabel, plan.Head.GuestLabel)
	require.Equal(t, b.GuestLabel, plan.Tail.GuestLabel)
	require.Equal(t, b.Platform, plan.Tail.Platform)

	// No room move requested: tail stays put.
	require.Equal(t, b.RoomID, plan.Tail.RoomID)
}

func TestNewPlanMovesTail(t *testing.T) {
	b := booking(t, "2025-01-10", "2025-01-15")

	plan, err := New(b, day(t, "2025-01-13"), "room-2")
	require.NoError(t, err)
	require.Equal(t, schedule.RoomID("room-1"), plan.Head.RoomID)
	require.Equal(t, schedule.RoomID("room-2"), plan.Tail.RoomID)
	require.Equal(t, schedule.RoomID("room-2"), plan.Request.NewRoomID)
}

func TestNewRejectsIllegalDate(t *testing.T) {
	b := booking(t, "2025-01-10", "2025-01-15")
	_, err := New(b, day(t, "2025-01-15"), "")
	require.ErrorIs(t, err, ErrDateOutsideWindow)

	oneNight := booking(t, "2025-01-10", "2025-01-11")
	_, err = New(oneNight, day(t, "2025-01-10"), "")
	require.ErrorIs(t, err, ErrUnsplittable)
}
