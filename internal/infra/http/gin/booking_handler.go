package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"frontdesk/internal/app/commands"
	"frontdesk/internal/app/dto"
	bookingapp "frontdesk/internal/app/handlers/booking"
	"frontdesk/internal/domain/shared/daterange"
)

type BookingHandler struct {
	Commands commands.Bus
}

type splitBookingRequest struct {
	SplitDate string `json:"split_date" binding:"required"`
	NewRoomID string `json:"new_room_id"`
}

func (h BookingHandler) Split(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req splitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	splitDate, err := daterange.ParseDay(req.SplitDate)
	if err != nil {
		respondError(c, err)
		return
	}
	cmd := bookingapp.SplitBookingCommand{
		CommandID:       uuid.NewString(),
		BookingID:       c.Param("id"),
		SplitDate:       splitDate,
		NewRoomID:       req.NewRoomID,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.SplitBookingCommand, *dto.SplitResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, result)
}

var _ BookingHTTP = BookingHandler{}
