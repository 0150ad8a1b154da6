package ginserver

import (
	"fmt"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"frontdesk/internal/app/commands"
	"frontdesk/internal/app/dto"
	ratesapp "frontdesk/internal/app/handlers/rates"
	"frontdesk/internal/domain/shared/daterange"
)

type RatesHandler struct {
	Commands commands.Bus
}

type bulkRatesRequest struct {
	RoomIDs        []string           `json:"room_ids" binding:"required"`
	StartDate      string             `json:"start_date" binding:"required"`
	EndDate        string             `json:"end_date" binding:"required"`
	Weekdays       []int              `json:"weekdays"` // 0=Sunday .. 6=Saturday, empty = all
	Platforms      []string           `json:"platforms" binding:"required"`
	BasePriceCents int64              `json:"base_price_cents"`
	PlatformDeltas map[string]float64 `json:"platform_deltas"`
}

func (h RatesHandler) BulkUpdate(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req bulkRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := daterange.ParseDay(req.StartDate)
	if err != nil {
		respondError(c, err)
		return
	}
	end, err := daterange.ParseDay(req.EndDate)
	if err != nil {
		respondError(c, err)
		return
	}
	weekdays := make([]time.Weekday, 0, len(req.Weekdays))
	for _, wd := range req.Weekdays {
		if wd < 0 || wd > 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("weekday %d outside 0..6", wd)})
			return
		}
		weekdays = append(weekdays, time.Weekday(wd))
	}
	cmd := ratesapp.BulkUpdateRatesCommand{
		CommandID:       uuid.NewString(),
		RoomIDs:         req.RoomIDs,
		Start:           start,
		End:             end,
		Weekdays:        weekdays,
		Platforms:       req.Platforms,
		BasePriceCents:  req.BasePriceCents,
		PlatformDeltas:  req.PlatformDeltas,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[ratesapp.BulkUpdateRatesCommand, *dto.BulkRateResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, result)
}

var _ RatesHTTP = RatesHandler{}
