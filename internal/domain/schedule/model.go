package schedule

import (
	"fmt"
	"sort"
	"time"

	"frontdesk/internal/domain/shared/daterange"
	"frontdesk/internal/domain/shared/events"
)

// Model is an immutable per-room view of booked and blocked intervals.
// A new model is built whenever the source collections change; readers never
// observe partial updates.
type Model struct {
	rooms       []Room
	roomsByID   map[RoomID]Room
	bookings    map[RoomID][]BookingInterval
	blocks      map[RoomID][]BlockedInterval
	byBookingID map[BookingID]BookingInterval
	byBlockID   map[BlockID]BlockedInterval

	events.EventRecorder
}

// DropWarning describes a source record rejected during the build.
type DropWarning struct {
	Kind   string // "booking" or "block"
	ID     string
	Reason string
}

// OverlapWarning flags two intervals claiming the same nights in one room.
// The upstream service is supposed to prevent this; the model renders both
// and reports the violation instead of failing the build.
type OverlapWarning struct {
	RoomID RoomID
	First  string
	Second string
}

// BuildReport accumulates everything the build degraded on.
type BuildReport struct {
	Dropped  []DropWarning
	Overlaps []OverlapWarning
}

func (r BuildReport) Clean() bool {
	return len(r.Dropped) == 0 && len(r.Overlaps) == 0
}

// BuildModel groups the fetched collections by room, dropping malformed
// records per warning instead of failing: one bad record must not blank the
// whole grid.
func BuildModel(rooms []RoomRecord, bookings []BookingRecord, blocks []BlockRecord, now time.Time) (*Model, BuildReport) {
	m := &Model{
		roomsByID:   make(map[RoomID]Room, len(rooms)),
		bookings:    make(map[RoomID][]BookingInterval),
		blocks:      make(map[RoomID][]BlockedInterval),
		byBookingID: make(map[BookingID]BookingInterval, len(bookings)),
		byBlockID:   make(map[BlockID]BlockedInterval, len(blocks)),
	}
	var report BuildReport

	for _, rec := range rooms {
		room := Room{
			ID:           RoomID(rec.ID),
			Name:         rec.Name,
			Structure:    StructureID(rec.StructureID),
			PropertyType: PropertyTypeID(rec.PropertyTypeID),
		}
		m.rooms = append(m.rooms, room)
		m.roomsByID[room.ID] = room
	}
	sort.Slice(m.rooms, func(i, j int) bool { return m.rooms[i].ID < m.rooms[j].ID })

	for _, rec := range bookings {
		iv, err := parseBooking(rec)
		if err != nil {
			report.Dropped = append(report.Dropped, DropWarning{Kind: "booking", ID: rec.ID, Reason: err.Error()})
			continue
		}
		m.bookings[iv.RoomID] = append(m.bookings[iv.RoomID], iv)
		m.byBookingID[iv.ID] = iv
	}
	for _, rec := range blocks {
		iv, err := parseBlock(rec)
		if err != nil {
			report.Dropped = append(report.Dropped, DropWarning{Kind: "block", ID: rec.ID, Reason: err.Error()})
			continue
		}
		m.blocks[iv.RoomID] = append(m.blocks[iv.RoomID], iv)
		m.byBlockID[iv.ID] = iv
	}

	for roomID := range m.bookings {
		ivs := m.bookings[roomID]
		sort.Slice(ivs, func(i, j int) bool { return ivs[i].Range.CheckIn.Before(ivs[j].Range.CheckIn) })
	}
	for roomID := range m.blocks {
		ivs := m.blocks[roomID]
		sort.Slice(ivs, func(i, j int) bool { return ivs[i].Start.Before(ivs[j].Start) })
	}

	report.Overlaps = m.detectOverlaps(now)
	return m, report
}

func parseBooking(rec BookingRecord) (BookingInterval, error) {
	checkIn, err := daterange.ParseDay(rec.CheckIn)
	if err != nil {
		return BookingInterval{}, fmt.Errorf("check_in %q: %w", rec.CheckIn, err)
	}
	checkOut, err := daterange.ParseDay(rec.CheckOut)
	if err != nil {
		return BookingInterval{}, fmt.Errorf("check_out %q: %w", rec.CheckOut, err)
	}
	dr, err := daterange.New(checkIn, checkOut)
	if err != nil {
		return BookingInterval{}, err
	}
	return BookingInterval{
		ID:         BookingID(rec.ID),
		RoomID:     RoomID(rec.RoomID),
		Range:      dr,
		GuestLabel: rec.GuestName,
		Platform:   Platform(rec.Platform),
	}, nil
}

func parseBlock(rec BlockRecord) (BlockedInterval, error) {
	start, err := daterange.ParseDay(rec.StartDate)
	if err != nil {
		return BlockedInterval{}, fmt.Errorf("start_date %q: %w", rec.StartDate, err)
	}
	end, err := daterange.ParseDay(rec.EndDate)
	if err != nil {
		return BlockedInterval{}, fmt.Errorf("end_date %q: %w", rec.EndDate, err)
	}
	if end.Before(start) {
		return BlockedInterval{}, fmt.Errorf("end_date %s before start_date %s", rec.EndDate, rec.StartDate)
	}
	return BlockedInterval{
		ID:     BlockID(rec.ID),
		RoomID: RoomID(rec.RoomID),
		Start:  daterange.Day(start),
		End:    daterange.Day(end),
		Reason: rec.Reason,
	}, nil
}

// detectOverlaps flags intervals sharing nights within one room. Lists are
// sorted by start, but ends are not ordered: a long interval can span several
// later ones, so every earlier interval is checked against each candidate and
// every overlapping pair is named. Bookings vs blocks are cross-checked
// pairwise.
func (m *Model) detectOverlaps(now time.Time) []OverlapWarning {
	var warnings []OverlapWarning
	flag := func(roomID RoomID, first, second string) {
		warnings = append(warnings, OverlapWarning{RoomID: roomID, First: first, Second: second})
		m.Record(OverlapDetected{RoomID: roomID, First: first, Second: second, At: now})
	}
	for roomID, ivs := range m.bookings {
		for i := 1; i < len(ivs); i++ {
			for j := 0; j < i; j++ {
				if ivs[j].Range.Overlaps(ivs[i].Range) {
					flag(roomID, string(ivs[j].ID), string(ivs[i].ID))
				}
			}
		}
	}
	for roomID, ivs := range m.blocks {
		for i := 1; i < len(ivs); i++ {
			for j := 0; j < i; j++ {
				if !ivs[i].Start.After(ivs[j].End) {
					flag(roomID, string(ivs[j].ID), string(ivs[i].ID))
				}
			}
		}
	}
	for roomID, bookings := range m.bookings {
		for _, b := range bookings {
			for _, bl := range m.blocks[roomID] {
				if b.Range.CheckIn.After(bl.End) || bl.Start.After(daterange.AddDays(b.Range.CheckOut, -1)) {
					continue
				}
				flag(roomID, string(b.ID), string(bl.ID))
			}
		}
	}
	return warnings
}

func (m *Model) Rooms() []Room {
	return m.rooms
}

func (m *Model) Room(id RoomID) (Room, bool) {
	room, ok := m.roomsByID[id]
	return room, ok
}

func (m *Model) BookingsFor(roomID RoomID) []BookingInterval {
	return m.bookings[roomID]
}

func (m *Model) BlocksFor(roomID RoomID) []BlockedInterval {
	return m.blocks[roomID]
}

func (m *Model) Booking(id BookingID) (BookingInterval, bool) {
	iv, ok := m.byBookingID[id]
	return iv, ok
}

func (m *Model) Block(id BlockID) (BlockedInterval, bool) {
	iv, ok := m.byBlockID[id]
	return iv, ok
}
