package split

import (
	"time"

	"frontdesk/internal/domain/schedule"
)

// Committed is raised after the external booking service accepted the split.
type Committed struct {
	BookingID schedule.BookingID
	SplitDate time.Time
	NewRoomID schedule.RoomID
	At        time.Time
}

func (e Committed) EventName() string     { return "booking.split_committed" }
func (e Committed) AggregateID() string   { return string(e.BookingID) }
func (e Committed) OccurredAt() time.Time { return e.At }
