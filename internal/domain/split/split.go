// Package split validates and plans dividing one booking into two contiguous
// bookings at a chosen date. The actual split happens in the external booking
// service; this package only decides whether a request is legal and what it
// should look like, so the UI can disable doomed actions before submission.
package split

import (
	"errors"
	"time"

	"frontdesk/internal/domain/schedule"
	"frontdesk/internal/domain/shared/daterange"
)

var (
	// ErrUnsplittable means the booking is a single night: no split date can
	// leave a night on each side.
	ErrUnsplittable = errors.New("split: booking cannot be split")
	// ErrDateOutsideWindow means the candidate date does not leave at least
	// one night on each side of the cut.
	ErrDateOutsideWindow = errors.New("split: date outside the legal window")
)

// Request is the single mutation issued to the external booking service on
// commit. NewRoomID empty keeps the tail segment on the original room.
type Request struct {
	BookingID schedule.BookingID
	SplitDate time.Time
	NewRoomID schedule.RoomID
}

// Plan is a validated split: the mutation request plus previews of the two
// bookings the service is expected to replace the original with. The local
// model stays untouched until the service response triggers a rebuild.
type Plan struct {
	Request Request
	Head    schedule.BookingInterval
	Tail    schedule.BookingInterval
}

// Window returns the inclusive range of legal split dates for b:
// [checkIn+1, checkOut-1]. ok is false for one-night bookings, where the
// window is empty and the action must be disabled outright.
func Window(b schedule.BookingInterval) (min, max time.Time, ok bool) {
	min = daterange.AddDays(b.Range.CheckIn, 1)
	max = daterange.AddDays(b.Range.CheckOut, -1)
	return min, max, !max.Before(min)
}

// Validate rejects an illegal split date before it can reach the mutation
// call.
func Validate(b schedule.BookingInterval, date time.Time) error {
	min, max, ok := Window(b)
	if !ok {
		return ErrUnsplittable
	}
	date = daterange.Day(date)
	if date.Before(min) || date.After(max) {
		return ErrDateOutsideWindow
	}
	return nil
}

// New validates the candidate date and produces the plan. The tail segment
// moves to newRoomID when given, otherwise it stays on the booking's room.
func New(b schedule.BookingInterval, date time.Time, newRoomID schedule.RoomID) (Plan, error) {
	if err := Validate(b, date); err != nil {
		return Plan{}, err
	}
	date = daterange.Day(date)
	tailRoom := newRoomID
	if tailRoom == "" {
		tailRoom = b.RoomID
	}
	head, err := daterange.New(b.Range.CheckIn, date)
	if err != nil {
		return Plan{}, err
	}
	tail, err := daterange.New(date, b.Range.CheckOut)
	if err != nil {
		return Plan{}, err
	}
	return Plan{
		Request: Request{BookingID: b.ID, SplitDate: date, NewRoomID: newRoomID},
		Head: schedule.BookingInterval{
			ID:         b.ID,
			RoomID:     b.RoomID,
			Range:      head,
			GuestLabel: b.GuestLabel,
			Platform:   b.Platform,
		},
		Tail: schedule.BookingInterval{
			RoomID:     tailRoom,
			Range:      tail,
			GuestLabel: b.GuestLabel,
			Platform:   b.Platform,
		},
	}, nil
}
