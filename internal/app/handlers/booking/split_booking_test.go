package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"frontdesk/internal/app/policies"
	"frontdesk/internal/app/snapshot"
	"frontdesk/internal/domain/schedule"
	domainsplit "frontdesk/internal/domain/split"
)

type stubSource struct {
	cols snapshot.Collections
}

func (s stubSource) FetchCollections(context.Context) (snapshot.Collections, error) {
	return s.cols, nil
}

type fakeBookingService struct {
	calls []domainsplit.Request
	err   error
}

func (f *fakeBookingService) SplitBooking(_ context.Context, req domainsplit.Request) ([]schedule.BookingRecord, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return nil, nil
}

type fakeRefresher struct {
	calls int
}

func (f *fakeRefresher) Refresh(context.Context) error {
	f.calls++
	return nil
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
				{ID: "b-1", RoomID: "room-1", CheckIn: "2025-01-10", CheckOut: "2025-01-15", GuestName: "Petrov", Platform: "airbnb"},
			},
		}},
		HorizonDays: 60,
		Now:         func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
	}
	require.NoError(t, store.Refresh(context.Background()))
	return store
}

func splitDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestSplitBookingHappyPath(t *testing.T) {
	svc := &fakeBookingService{}
	refresher := &fakeRefresher{}
	h := &SplitBookingHandler{
		Snapshots: loadedStore(t),
		Booking:   svc,
		Refresher: refresher,
	}

	result, err := h.Handle(context.Background(), SplitBookingCommand{
		BookingID: "b-1",
		SplitDate: splitDate(t, "2025-01-12"),
		NewRoomID: "room-2",
	})
	require.NoError(t, err)

	require.Len(t, svc.calls, 1)
	require.Equal(t, schedule.BookingID("b-1"), svc.calls[0].BookingID)
	require.Equal(t, schedule.RoomID("room-2"), svc.calls[0].NewRoomID)
	require.Equal(t, 1, refresher.calls)

	require.Equal(t, "b-1", result.BookingID)
	require.Equal(t, "2025-01-12", result.SplitDate)
	require.Equal(t, "room-1", result.Head.RoomID)
	require.Equal(t, "2025-01-10", result.Head.CheckIn)
	require.Equal(t, "2025-01-12", result.Head.CheckOut)
	require.Equal(t, "room-2", result.Tail.RoomID)
	require.Equal(t, "2025-01-12", result.Tail.CheckIn)
	require.Equal(t, "2025-01-15", result.Tail.CheckOut)
}

func TestSplitBookingInvalidDateNeverReachesService(t *testing.T) {
	svc := &fakeBookingService{}
	h := &SplitBookingHandler{Snapshots: loadedStore(t), Booking: svc}

	for _, date := range []string{"2025-01-10", "2025-01-15", "2025-02-01"} {
		_, err := h.Handle(context.Background(), SplitBookingCommand{
			BookingID: "b-1",
			SplitDate: splitDate(t, date),
		})
		require.ErrorIs(t, err, domainsplit.ErrDateOutsideWindow, "date %s", date)
	}
	require.Empty(t, svc.calls, "illegal dates must not hit the wire")
}

func TestSplitBookingUnknownBooking(t *testing.T) {
	svc := &fakeBookingService{}
	h := &SplitBookingHandler{Snapshots: loadedStore(t), Booking: svc}

	_, err := h.Handle(context.Background(), SplitBookingCommand{
		BookingID: "missing",
		SplitDate: splitDate(t, "2025-01-12"),
	})
	require.ErrorIs(t, err, ErrBookingNotFound)
	require.Empty(t, svc.calls)
}

func TestSplitBookingUnknownTargetRoom(t *testing.T) {
	svc := &fakeBookingService{}
	h := &SplitBookingHandler{Snapshots: loadedStore(t), Booking: svc}

	_, err := h.Handle(context.Background(), SplitBookingCommand{
		BookingID: "b-1",
		SplitDate: splitDate(t, "2025-01-12"),
		NewRoomID: "room-404",
	})
	require.ErrorIs(t, err, ErrUnknownRoom)
	require.Empty(t, svc.calls)
}

func TestSplitBookingServiceFailureLeavesModelUntouched(t *testing.T) {
	store := loadedStore(t)
	svc := &fakeBookingService{err: errors.New("boom")}
	refresher := &fakeRefresher{}
	h := &SplitBookingHandler{Snapshots: store, Booking: svc, Refresher: refresher}

	_, err := h.Handle(context.Background(), SplitBookingCommand{
		BookingID: "b-1",
		SplitDate: splitDate(t, "2025-01-12"),
	})
	require.ErrorIs(t, err, policies.ErrService)
	require.Equal(t, 0, refresher.calls, "no rebuild after a failed mutation")

	view, err := store.View()
	require.NoError(t, err)
	b, ok := view.Model.Booking("b-1")
	require.True(t, ok)
	require.Equal(t, 5, b.Range.Nights(), "original booking still intact")
}

func TestSplitBookingNotLoaded(t *testing.T) {
	h := &SplitBookingHandler{Snapshots: &snapshot.Store{}}
	_, err := h.Handle(context.Background(), SplitBookingCommand{
		BookingID: "b-1",
		SplitDate: splitDate(t, "2025-01-12"),
	})
	require.ErrorIs(t, err, snapshot.ErrNotLoaded)
}
