package rates

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"frontdesk/internal/app/commands"
	"frontdesk/internal/app/dto"
	"frontdesk/internal/app/middleware"
	"frontdesk/internal/app/outbox"
	"frontdesk/internal/app/policies"
	domainrates "frontdesk/internal/domain/rates"
	domainschedule "frontdesk/internal/domain/schedule"
	"frontdesk/internal/domain/shared/events"
)

const bulkUpdateKey = "rates.bulk_update"

// BulkUpdateRatesCommand applies one price selection across rooms, dates and
// platforms. Deltas are percentages against the base price; re-running the
// same command writes the same prices again, it never compounds.
type BulkUpdateRatesCommand struct {
	CommandID       string
	RoomIDs         []string `validate:"required"`
	Start           time.Time
	End             time.Time
	Weekdays        []time.Weekday
	Platforms       []string `validate:"required"`
	BasePriceCents  int64
	PlatformDeltas  map[string]float64
	IdempotencyKeyV string
}

func (c BulkUpdateRatesCommand) Key() string { return bulkUpdateKey }

func (c BulkUpdateRatesCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c BulkUpdateRatesCommand) ResultPrototype() any { return &dto.BulkRateResult{} }

type BulkUpdateRatesHandler struct {
	Rates   policies.RateService
	Outbox  outbox.Outbox
	Encoder outbox.EventEncoder
	Logger  *slog.Logger
	Now     policies.Clock
}

func (h *BulkUpdateRatesHandler) Handle(ctx context.Context, cmd BulkUpdateRatesCommand) (*dto.BulkRateResult, error) {
	selection := toSelection(cmd)
	// Validation rejects the whole batch; there is no partial application.
	targets, err := selection.Enumerate()
	if err != nil {
		return nil, err
	}

	if h.Rates == nil {
		return nil, fmt.Errorf("%w: rate service not configured", policies.ErrService)
	}
	if err := h.Rates.UpdateRates(ctx, targets); err != nil {
		return nil, fmt.Errorf("%w: update rates: %v", policies.ErrService, err)
	}

	ev := domainrates.Applied{Rooms: len(selection.RoomIDs), Targets: len(targets), At: h.nowUTC()}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, []events.DomainEvent{ev}); err != nil {
		h.log().Warn("rates: event record failed", "error", err)
	}

	return &dto.BulkRateResult{Rooms: len(selection.RoomIDs), Targets: len(targets)}, nil
}

func toSelection(cmd BulkUpdateRatesCommand) domainrates.Selection {
	roomIDs := make([]domainschedule.RoomID, 0, len(cmd.RoomIDs))
	for _, id := range cmd.RoomIDs {
		roomIDs = append(roomIDs, domainschedule.RoomID(id))
	}
	platforms := make([]domainschedule.Platform, 0, len(cmd.Platforms))
	for _, p := range cmd.Platforms {
		platforms = append(platforms, domainschedule.Platform(p))
	}
	deltas := make(map[domainschedule.Platform]float64, len(cmd.PlatformDeltas))
	for p, d := range cmd.PlatformDeltas {
		deltas[domainschedule.Platform(p)] = d
	}
	return domainrates.Selection{
		RoomIDs:        roomIDs,
		Start:          cmd.Start,
		End:            cmd.End,
		Weekdays:       cmd.Weekdays,
		Platforms:      platforms,
		BasePriceCents: cmd.BasePriceCents,
		PlatformDeltas: deltas,
	}
}

func (h *BulkUpdateRatesHandler) log() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func (h *BulkUpdateRatesHandler) nowUTC() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

var _ commands.Handler[BulkUpdateRatesCommand, *dto.BulkRateResult] = (*BulkUpdateRatesHandler)(nil)
var _ middleware.IdempotentCommand = BulkUpdateRatesCommand{}
