package schedule

import (
	"time"

	"frontdesk/internal/domain/shared/daterange"
)

type CellKind string

const (
	CellFree    CellKind = "FREE"
	CellBooked  CellKind = "BOOKED"
	CellBlocked CellKind = "BLOCKED"
)

// CellState answers what occupies one (room, day) cell of the grid.
type CellState struct {
	Kind      CellKind
	BookingID BookingID
	BlockID   BlockID
}

// Occupancy resolves the cell for roomID on date. A booking claims every day
// from check-in through the check-out day inclusive (the display convention),
// a block claims [start, end]. When both claim the cell the booking wins;
// real blocks never sit under bookings upstream, this is a tie-break for
// dirty data, not a business rule.
func (m *Model) Occupancy(roomID RoomID, date time.Time) CellState {
	for _, b := range m.bookings[roomID] {
		if b.Range.ContainsDisplayDate(date) {
			return CellState{Kind: CellBooked, BookingID: b.ID}
		}
	}
	for _, bl := range m.blocks[roomID] {
		if bl.ContainsDate(date) {
			return CellState{Kind: CellBlocked, BlockID: bl.ID}
		}
	}
	return CellState{Kind: CellFree}
}

// RangeFree reports whether every day in [start, end] inclusive is free for
// roomID. The grid uses it to gate cell clicks: occupied cells are inert.
func (m *Model) RangeFree(roomID RoomID, start, end time.Time) bool {
	start, end = daterange.Day(start), daterange.Day(end)
	for _, b := range m.bookings[roomID] {
		if !b.Range.CheckIn.After(end) && !start.After(b.Range.CheckOut) {
			return false
		}
	}
	for _, bl := range m.blocks[roomID] {
		if !bl.Start.After(end) && !start.After(bl.End) {
			return false
		}
	}
	return true
}
