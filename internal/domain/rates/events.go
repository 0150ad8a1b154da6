package rates

import "time"

// Applied is raised after the external rate service accepted a bulk update.
type Applied struct {
	Rooms   int
	Targets int
	At      time.Time
}

func (e Applied) EventName() string     { return "rates.bulk_applied" }
func (e Applied) AggregateID() string   { return "rates" }
func (e Applied) OccurredAt() time.Time { return e.At }
