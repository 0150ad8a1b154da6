package grid

import (
	"context"
	"errors"
	"time"

	"frontdesk/internal/app/dto"
	"frontdesk/internal/app/queries"
	"frontdesk/internal/app/snapshot"
	"frontdesk/internal/domain/schedule"
	"frontdesk/internal/domain/shared/daterange"
)

const checkRangeKey = "grid.check_range"

var (
	ErrUnknownRoom  = errors.New("grid: unknown room")
	ErrInvalidRange = errors.New("grid: end date before start date")
)

// CheckRangeQuery gates user actions on a cell range: only free ranges may
// open the create-booking or block-dates flow.
type CheckRangeQuery struct {
	RoomID string `validate:"required"`
	Start  time.Time
	End    time.Time
}

func (q CheckRangeQuery) Key() string { return checkRangeKey }

type CheckRangeHandler struct {
	Snapshots *snapshot.Store
}

func (h *CheckRangeHandler) Handle(ctx context.Context, q CheckRangeQuery) (dto.Availability, error) {
	var zero dto.Availability
	if q.Start.IsZero() || q.End.IsZero() || daterange.Day(q.End).Before(daterange.Day(q.Start)) {
		return zero, ErrInvalidRange
	}
	view, err := h.Snapshots.View()
	if err != nil {
		return zero, err
	}
	roomID := schedule.RoomID(q.RoomID)
	if _, ok := view.Model.Room(roomID); !ok {
		return zero, ErrUnknownRoom
	}
	return dto.Availability{
		RoomID: q.RoomID,
		Start:  daterange.FormatDay(q.Start),
		End:    daterange.FormatDay(q.End),
		Free:   view.Model.RangeFree(roomID, q.Start, q.End),
	}, nil
}

var _ queries.Handler[CheckRangeQuery, dto.Availability] = (*CheckRangeHandler)(nil)
