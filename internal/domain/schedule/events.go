package schedule

import "time"

// OverlapDetected is raised at model-build time when two intervals claim the
// same nights in one room. The upstream service owns the non-overlap
// invariant; this event makes violations visible instead of silently stacking
// bars.
type OverlapDetected struct {
	RoomID RoomID
	First  string
	Second string
	At     time.Time
}

func (e OverlapDetected) EventName() string     { return "schedule.overlap_detected" }
func (e OverlapDetected) AggregateID() string   { return string(e.RoomID) }
func (e OverlapDetected) OccurredAt() time.Time { return e.At }

// BlockReleased is raised after the external service removed a blocked range.
type BlockReleased struct {
	BlockID BlockID
	RoomID  RoomID
	At      time.Time
}

func (e BlockReleased) EventName() string     { return "schedule.block_released" }
func (e BlockReleased) AggregateID() string   { return string(e.BlockID) }
func (e BlockReleased) OccurredAt() time.Time { return e.At }
