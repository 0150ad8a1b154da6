package blocks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"frontdesk/internal/app/commands"
	"frontdesk/internal/app/middleware"
	"frontdesk/internal/app/outbox"
	"frontdesk/internal/app/policies"
	"frontdesk/internal/app/snapshot"
	domainschedule "frontdesk/internal/domain/schedule"
	"frontdesk/internal/domain/shared/events"
)

const unblockKey = "blocks.unblock"

var ErrBlockNotFound = errors.New("blocks: not found in current snapshot")

// UnblockDatesCommand releases a blocked range through the external service.
type UnblockDatesCommand struct {
	CommandID       string
	BlockID         string `validate:"required"`
	IdempotencyKeyV string
}

func (c UnblockDatesCommand) Key() string { return unblockKey }

func (c UnblockDatesCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c UnblockDatesCommand) ResultPrototype() any { return &UnblockResult{} }

type UnblockResult struct {
	BlockID string `json:"block_id"`
}

type UnblockHandler struct {
	Snapshots *snapshot.Store
	Blocks    policies.BlockService
	Refresher policies.Refresher
	Outbox    outbox.Outbox
	Encoder   outbox.EventEncoder
	Logger    *slog.Logger
	Now       policies.Clock
}

func (h *UnblockHandler) Handle(ctx context.Context, cmd UnblockDatesCommand) (*UnblockResult, error) {
	view, err := h.Snapshots.View()
	if err != nil {
		return nil, err
	}
	block, ok := view.Model.Block(domainschedule.BlockID(cmd.BlockID))
	if !ok {
		return nil, ErrBlockNotFound
	}

	if h.Blocks == nil {
		return nil, fmt.Errorf("%w: block service not configured", policies.ErrService)
	}
	if err := h.Blocks.UnblockDates(ctx, block.ID); err != nil {
		return nil, fmt.Errorf("%w: unblock dates: %v", policies.ErrService, err)
	}

	ev := domainschedule.BlockReleased{BlockID: block.ID, RoomID: block.RoomID, At: h.nowUTC()}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, []events.DomainEvent{ev}); err != nil {
		h.log().Warn("unblock: event record failed", "block_id", cmd.BlockID, "error", err)
	}

	if h.Refresher != nil {
		if err := h.Refresher.Refresh(ctx); err != nil {
			h.log().Warn("unblock: snapshot refresh failed", "block_id", cmd.BlockID, "error", err)
		}
	}
	return &UnblockResult{BlockID: cmd.BlockID}, nil
}

func (h *UnblockHandler) log() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *UnblockHandler) nowUTC() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

var _ commands.Handler[UnblockDatesCommand, *UnblockResult] = (*UnblockHandler)(nil)
var _ middleware.IdempotentCommand = UnblockDatesCommand{}
