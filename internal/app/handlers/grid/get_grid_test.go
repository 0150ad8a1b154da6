package grid

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"frontdesk/internal/app/dto"
	"frontdesk/internal/app/snapshot"
	"frontdesk/internal/domain/schedule"
)

type stubSource struct {
	cols snapshot.Collections
}

func (s stubSource) FetchCollections(context.Context) (snapshot.Collections, error) {
	return s.cols, nil
}

func loadedStore(t *testing.T) *snapshot.Store {
	t.Helper()
	store := &snapshot.Store{
		Source: stubSource{cols: snapshot.Collections{
			Rooms: []schedule.RoomRecord{
				{ID: "room-1", Name: "Garden"},
				{ID: "room-2", Name: "Sea View"},
			},
			Bookings: []schedule.BookingRecord{
				// Axis starts 2025-01-01, so check-in sits at index 9.
				{ID: "b-1", RoomID: "room-1", CheckIn: "2025-01-10", CheckOut: "2025-01-15", GuestName: "Petrov", Platform: "airbnb"},
			},
			Blocks: []schedule.BlockRecord{
				{ID: "bl-1", RoomID: "room-2", StartDate: "2025-01-03", EndDate: "2025-01-05", Reason: "maintenance"},
			},
		}},
		HorizonDays: 90,
		Now:         func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
	}
	require.NoError(t, store.Refresh(context.Background()))
	return store
}

func TestGetGridProjectsBars(t *testing.T) {
	h := &GetGridHandler{Snapshots: loadedStore(t), DefaultCellWidth: 40}

	grid, err := h.Handle(context.Background(), GetGridQuery{Offset: 0, Count: 14})
	require.NoError(t, err)

	require.Len(t, grid.Days, 14)
	require.Equal(t, "2025-01-01", grid.Days[0])
	require.Equal(t, "2025-01-14", grid.Days[13])
	require.Equal(t, 40, grid.CellWidth)
	require.Len(t, grid.Rows, 2)

	row1 := grid.Rows[0]
	require.Equal(t, "room-1", row1.RoomID)
	require.Len(t, row1.Bars, 1)
	bar := row1.Bars[0]
	require.Equal(t, "booking", bar.Kind)
	require.Equal(t, "b-1", bar.BookingID)
	require.Equal(t, "Petrov", bar.Label)
	// Check-in index 9, checkout index 14: 6 cells, inset applied.
	require.Equal(t, 9*40+3, bar.Left)
	require.Equal(t, 6*40-6, bar.Width)

	row2 := grid.Rows[1]
	require.Len(t, row2.Bars, 1)
	require.Equal(t, "block", row2.Bars[0].Kind)
	require.Equal(t, "maintenance", row2.Bars[0].Reason)
	require.Equal(t, 2*40, row2.Bars[0].Left)
	require.Equal(t, 3*40, row2.Bars[0].Width)
}

func TestGetGridScrolledWindowTranslates(t *testing.T) {
	h := &GetGridHandler{Snapshots: loadedStore(t), DefaultCellWidth: 40}

	at0, err := h.Handle(context.Background(), GetGridQuery{Offset: 0, Count: 30})
	require.NoError(t, err)
	at5, err := h.Handle(context.Background(), GetGridQuery{Offset: 5, Count: 30})
	require.NoError(t, err)

	bar0 := at0.Rows[0].Bars[0]
	bar5 := at5.Rows[0].Bars[0]
	require.Equal(t, bar0.Left-5*40, bar5.Left)
	require.Equal(t, bar0.Width, bar5.Width)
}

func TestGetGridHidesOffWindowBars(t *testing.T) {
	h := &GetGridHandler{Snapshots: loadedStore(t), DefaultCellWidth: 40}

	// Window far past both intervals.
	grid, err := h.Handle(context.Background(), GetGridQuery{Offset: 40, Count: 14})
	require.NoError(t, err)
	for _, row := range grid.Rows {
		require.Empty(t, row.Bars)
	}
}

func TestGetGridCellWidthOverride(t *testing.T) {
	h := &GetGridHandler{Snapshots: loadedStore(t), DefaultCellWidth: 40}
	grid, err := h.Handle(context.Background(), GetGridQuery{Offset: 0, Count: 7, CellWidth: 25})
	require.NoError(t, err)
	require.Equal(t, 25, grid.CellWidth)
}

func TestGetGridInvalidWindow(t *testing.T) {
	h := &GetGridHandler{Snapshots: loadedStore(t), DefaultCellWidth: 40}
	_, err := h.Handle(context.Background(), GetGridQuery{Offset: 0, Count: 0})
	require.ErrorIs(t, err, ErrInvalidWindow)
}

func TestGetGridNotLoaded(t *testing.T) {
	h := &GetGridHandler{Snapshots: &snapshot.Store{}, DefaultCellWidth: 40}
	_, err := h.Handle(context.Background(), GetGridQuery{Offset: 0, Count: 14})
	require.ErrorIs(t, err, snapshot.ErrNotLoaded)
}

func TestCheckRange(t *testing.T) {
	h := &CheckRangeHandler{Snapshots: loadedStore(t)}

	free, err := h.Handle(context.Background(), CheckRangeQuery{
		RoomID: "room-1",
		Start:  time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, dto.Availability{RoomID: "room-1", Start: "2025-01-16", End: "2025-01-20", Free: true}, free)

	occupied, err := h.Handle(context.Background(), CheckRangeQuery{
		RoomID: "room-1",
		Start:  time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.False(t, occupied.Free)
}

func TestCheckRangeUnknownRoom(t *testing.T) {
	h := &CheckRangeHandler{Snapshots: loadedStore(t)}
	_, err := h.Handle(context.Background(), CheckRangeQuery{
		RoomID: "room-404",
		Start:  time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, ErrUnknownRoom)
}

func TestCheckRangeInvalidRange(t *testing.T) {
	h := &CheckRangeHandler{Snapshots: loadedStore(t)}
	_, err := h.Handle(context.Background(), CheckRangeQuery{
		RoomID: "room-1",
		Start:  time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = h.Handle(context.Background(), CheckRangeQuery{RoomID: "room-1"})
	require.ErrorIs(t, err, ErrInvalidRange)
}
