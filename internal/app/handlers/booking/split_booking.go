package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"frontdesk/internal/app/commands"
	"frontdesk/internal/app/dto"
	"frontdesk/internal/app/middleware"
	"frontdesk/internal/app/outbox"
	"frontdesk/internal/app/policies"
	"frontdesk/internal/app/snapshot"
	domainschedule "frontdesk/internal/domain/schedule"
	"frontdesk/internal/domain/shared/events"
	domainsplit "frontdesk/internal/domain/split"
)

const splitBookingKey = "booking.split"

var (
	ErrBookingNotFound = errors.New("booking: not found in current snapshot")
	ErrUnknownRoom     = errors.New("booking: target room unknown")
)

// SplitBookingCommand asks the external booking service to replace one
// booking with two contiguous ones cut at SplitDate. NewRoomID empty keeps
// the tail on the original room.
type SplitBookingCommand struct {
	CommandID       string
	BookingID       string `validate:"required"`
	SplitDate       time.Time
	NewRoomID       string
	IdempotencyKeyV string
}

func (c SplitBookingCommand) Key() string { return splitBookingKey }

func (c SplitBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c SplitBookingCommand) ResultPrototype() any { return &dto.SplitResult{} }

type SplitBookingHandler struct {
	Snapshots *snapshot.Store
	Booking   policies.BookingService
	Refresher policies.Refresher
	Outbox    outbox.Outbox
	Encoder   outbox.EventEncoder
	Logger    *slog.Logger
	Now       policies.Clock
}

func (h *SplitBookingHandler) Handle(ctx context.Context, cmd SplitBookingCommand) (*dto.SplitResult, error) {
	view, err := h.Snapshots.View()
	if err != nil {
		return nil, err
	}
	b, ok := view.Model.Booking(domainschedule.BookingID(cmd.BookingID))
	if !ok {
		return nil, ErrBookingNotFound
	}
	newRoomID := domainschedule.RoomID(cmd.NewRoomID)
	if newRoomID != "" {
		if _, ok := view.Model.Room(newRoomID); !ok {
			return nil, ErrUnknownRoom
		}
	}

	// Validation happens before the mutation call; an illegal split date
	// never reaches the wire.
	plan, err := domainsplit.New(b, cmd.SplitDate, newRoomID)
	if err != nil {
		return nil, err
	}

	if h.Booking == nil {
		return nil, fmt.Errorf("%w: booking service not configured", policies.ErrService)
	}
	if _, err := h.Booking.SplitBooking(ctx, plan.Request); err != nil {
		return nil, fmt.Errorf("%w: split booking: %v", policies.ErrService, err)
	}

	now := h.nowUTC()
	ev := domainsplit.Committed{
		BookingID: plan.Request.BookingID,
		SplitDate: plan.Request.SplitDate,
		NewRoomID: plan.Request.NewRoomID,
		At:        now,
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, []events.DomainEvent{ev}); err != nil {
		h.log().Warn("split: event record failed", "booking_id", cmd.BookingID, "error", err)
	}

	h.refresh(ctx, cmd.BookingID)

	result := dto.MapSplitPlan(plan)
	return &result, nil
}

// refresh rebuilds the snapshot from the service response; the local model is
// stale until then. A failed refresh only delays the rebuild, the mutation
// already succeeded upstream.
func (h *SplitBookingHandler) refresh(ctx context.Context, bookingID string) {
	if h.Refresher == nil {
		return
	}
	if err := h.Refresher.Refresh(ctx); err != nil {
		h.log().Warn("split: snapshot refresh failed", "booking_id", bookingID, "error", err)
	}
}

func (h *SplitBookingHandler) log() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *SplitBookingHandler) nowUTC() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

var _ commands.Handler[SplitBookingCommand, *dto.SplitResult] = (*SplitBookingHandler)(nil)
var _ middleware.IdempotentCommand = SplitBookingCommand{}
