package policies

import (
	"context"
	"errors"
	"time"

	"frontdesk/internal/domain/rates"
	"frontdesk/internal/domain/schedule"
	"frontdesk/internal/domain/split"
)

// ErrService marks failures of the external mutation calls. The local model
// is left untouched on such failures; callers display and retry, the engine
// never retries on its own.
var ErrService = errors.New("upstream service failure")

// BookingService is the external booking service boundary. The split is
// atomic there, never locally: the engine submits the request and treats its
// own model as stale until the next snapshot refresh.
type BookingService interface {
	SplitBooking(ctx context.Context, req split.Request) ([]schedule.BookingRecord, error)
}

// RateService applies bulk price writes.
type RateService interface {
	UpdateRates(ctx context.Context, targets []rates.Target) error
}

// BlockService releases blocked date ranges.
type BlockService interface {
	UnblockDates(ctx context.Context, blockID schedule.BlockID) error
}

// Refresher requests a model rebuild after a mutation was accepted upstream.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Clock is injected into command handlers so tests control event timestamps.
type Clock func() time.Time
