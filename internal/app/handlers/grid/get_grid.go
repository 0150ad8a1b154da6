package grid

import (
	"context"
	"errors"

	"frontdesk/internal/app/dto"
	"frontdesk/internal/app/queries"
	"frontdesk/internal/app/snapshot"
	"frontdesk/internal/domain/timeline"
)

const getGridKey = "grid.window"

var ErrInvalidWindow = errors.New("grid: window count must be positive")

// GetGridQuery renders the rooms-by-dates grid for one visible window.
// CellWidth zero falls back to the handler default.
type GetGridQuery struct {
	Offset    int `validate:"gte=0"`
	Count     int `validate:"gt=0"`
	CellWidth int `validate:"gte=0"`
}

func (q GetGridQuery) Key() string { return getGridKey }

type GetGridHandler struct {
	Snapshots        *snapshot.Store
	DefaultCellWidth int
}

func (h *GetGridHandler) Handle(ctx context.Context, q GetGridQuery) (dto.Grid, error) {
	if q.Count <= 0 {
		return dto.Grid{}, ErrInvalidWindow
	}
	view, err := h.Snapshots.View()
	if err != nil {
		return dto.Grid{}, err
	}

	cellWidth := q.CellWidth
	if cellWidth <= 0 {
		cellWidth = h.DefaultCellWidth
	}
	window := timeline.Window{Offset: q.Offset, Count: q.Count}
	projector := timeline.Projector{CellWidth: cellWidth}

	grid := dto.Grid{
		Days:      dto.MapWindowDays(view.Axis, window),
		Offset:    q.Offset,
		CellWidth: cellWidth,
	}
	for _, room := range view.Model.Rooms() {
		row := dto.GridRow{RoomID: string(room.ID), RoomName: room.Name}
		for _, b := range view.Model.BookingsFor(room.ID) {
			if g, ok := projector.BookingBar(view.Axis, b.Range, window); ok {
				row.Bars = append(row.Bars, dto.MapBookingBar(b, g))
			}
		}
		for _, bl := range view.Model.BlocksFor(room.ID) {
			if g, ok := projector.BlockBar(view.Axis, bl.Start, bl.End, window); ok {
				row.Bars = append(row.Bars, dto.MapBlockBar(bl, g))
			}
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid, nil
}

var _ queries.Handler[GetGridQuery, dto.Grid] = (*GetGridHandler)(nil)
