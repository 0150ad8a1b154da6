// Package rates enumerates the (room, date) cells a bulk rate update applies
// to and the per-platform prices to write. Enumeration is a pure function of
// the selection: re-running the same selection against the same base price
// produces the same writes, never compounding percentage deltas.
package rates

import (
	"errors"
	"math"
	"time"

	"frontdesk/internal/domain/schedule"
	"frontdesk/internal/domain/shared/daterange"
)

var (
	ErrInvalidRange  = errors.New("rates: end date before start date")
	ErrNoRooms       = errors.New("rates: no rooms selected")
	ErrNoPlatforms   = errors.New("rates: no platforms selected")
	ErrNegativePrice = errors.New("rates: base price must be non-negative")
	ErrInvalidDelta  = errors.New("rates: platform delta is not a finite number")
	ErrNegativeDelta = errors.New("rates: platform delta must be non-negative")
)

// Selection describes one bulk-edit operation. It is ephemeral: built for a
// single apply call and never persisted.
type Selection struct {
	RoomIDs        []schedule.RoomID
	Start          time.Time
	End            time.Time
	Weekdays       []time.Weekday // empty means every day in range
	Platforms      []schedule.Platform
	BasePriceCents int64
	PlatformDeltas map[schedule.Platform]float64 // percent markup, e.g. 10 for +10%; never negative
}

// Target is one price write handed to the external rate service.
type Target struct {
	RoomID     schedule.RoomID
	Date       time.Time
	Platform   schedule.Platform
	PriceCents int64
}

// Validate rejects the whole batch before any enumeration; there is no
// partial application.
func (s Selection) Validate() error {
	if len(s.RoomIDs) == 0 {
		return ErrNoRooms
	}
	if len(s.Platforms) == 0 {
		return ErrNoPlatforms
	}
	if s.Start.IsZero() || s.End.IsZero() || daterange.Day(s.End).Before(daterange.Day(s.Start)) {
		return ErrInvalidRange
	}
	if s.BasePriceCents < 0 {
		return ErrNegativePrice
	}
	for _, delta := range s.PlatformDeltas {
		if math.IsNaN(delta) || math.IsInf(delta, 0) {
			return ErrInvalidDelta
		}
		if delta < 0 {
			return ErrNegativeDelta
		}
	}
	return nil
}

// Enumerate expands the selection into concrete targets: every selected room,
// every day in [Start, End] passing the weekday mask, every platform.
func (s Selection) Enumerate() ([]Target, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	start, end := daterange.Day(s.Start), daterange.Day(s.End)
	var targets []Target
	for _, roomID := range s.RoomIDs {
		for d := start; !d.After(end); d = daterange.AddDays(d, 1) {
			if !s.matchesWeekday(d) {
				continue
			}
			for _, platform := range s.Platforms {
				targets = append(targets, Target{
					RoomID:     roomID,
					Date:       d,
					Platform:   platform,
					PriceCents: PriceFor(s.BasePriceCents, s.PlatformDeltas[platform]),
				})
			}
		}
	}
	return targets, nil
}

func (s Selection) matchesWeekday(d time.Time) bool {
	if len(s.Weekdays) == 0 {
		return true
	}
	wd := d.Weekday()
	for _, allowed := range s.Weekdays {
		if wd == allowed {
			return true
		}
	}
	return false
}

// PriceFor applies a percentage delta to the base price. A platform with no
// delta entry gets the base price unchanged (zero delta).
func PriceFor(baseCents int64, deltaPercent float64) int64 {
	return int64(math.Round(float64(baseCents) * (1 + deltaPercent/100)))
}
