package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: checkout must be after checkin")
	ErrUnparsable   = errors.New("daterange: unparsable date")
)

// ISO is the wire format for all dates exchanged with collaborators.
const ISO = "2006-01-02"

// Day truncates t to midnight UTC. All interval boundaries are day-granular;
// time-of-day is dropped before any comparison.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses an ISO yyyy-MM-dd string into a midnight-UTC day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(ISO, s)
	if err != nil {
		return time.Time{}, ErrUnparsable
	}
	return t, nil
}

// FormatDay renders a day back to the ISO wire format.
func FormatDay(t time.Time) string {
	return Day(t).Format(ISO)
}

// DaysBetween returns the signed number of whole days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / (24 * time.Hour))
}

// AddDays returns the day n days after t.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// DateRange represents a half-open interval [checkIn, checkOut)
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.CheckOut.IsZero() || dr.CheckIn.IsZero() {
		return ErrInvalidRange
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

func (dr DateRange) Nights() int {
	return DaysBetween(dr.CheckIn, dr.CheckOut)
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	t = Day(t)
	return !t.Before(dr.CheckIn) && t.Before(dr.CheckOut)
}

// ContainsDisplayDate is ContainsDate extended to the checkout day itself.
// The front-desk grid paints the checkout day's cell as occupied even though
// it is not a booked night.
func (dr DateRange) ContainsDisplayDate(t time.Time) bool {
	t = Day(t)
	return !t.Before(dr.CheckIn) && !t.After(dr.CheckOut)
}

// Days calls fn for every day in [CheckIn, CheckOut], checkout day included.
// Iteration stops early when fn returns false.
func (dr DateRange) Days(fn func(time.Time) bool) {
	for d := dr.CheckIn; !d.After(dr.CheckOut); d = AddDays(d, 1) {
		if !fn(d) {
			return
		}
	}
}
