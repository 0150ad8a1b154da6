package timeline

import (
	"errors"
	"time"

	"frontdesk/internal/domain/shared/daterange"
)

var ErrEmptyAxis = errors.New("timeline: axis needs at least one day")

// DateAxis is the ordered, gap-free sequence of days the grid renders.
// It stores only the first day and the length; every lookup is day-offset
// arithmetic, so there is no scan and no formatted-string matching to go
// stale.
type DateAxis struct {
	start  time.Time
	length int
}

func NewAxis(start time.Time, days int) (DateAxis, error) {
	if days <= 0 {
		return DateAxis{}, ErrEmptyAxis
	}
	return DateAxis{start: daterange.Day(start), length: days}, nil
}

func (a DateAxis) Len() int { return a.length }

func (a DateAxis) Start() time.Time { return a.start }

func (a DateAxis) End() time.Time { return daterange.AddDays(a.start, a.length-1) }

// At returns the day at index i. i must be in [0, Len).
func (a DateAxis) At(i int) time.Time {
	return daterange.AddDays(a.start, i)
}

// IndexOf maps a day to its axis index, or -1 when the day is outside the
// loaded horizon. -1 means "not represented", never index 0.
func (a DateAxis) IndexOf(t time.Time) int {
	i := daterange.DaysBetween(a.start, t)
	if i < 0 || i >= a.length {
		return -1
	}
	return i
}

// Days materializes the axis, mostly for rendering the date header.
func (a DateAxis) Days() []time.Time {
	out := make([]time.Time, a.length)
	for i := range out {
		out[i] = a.At(i)
	}
	return out
}
