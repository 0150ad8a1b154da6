package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"frontdesk/internal/app/commands"
	blocksapp "frontdesk/internal/app/handlers/blocks"
)

type BlocksHandler struct {
	Commands commands.Bus
}

func (h BlocksHandler) Unblock(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	cmd := blocksapp.UnblockDatesCommand{
		CommandID:       uuid.NewString(),
		BlockID:         c.Param("id"),
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[blocksapp.UnblockDatesCommand, *blocksapp.UnblockResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ BlocksHTTP = BlocksHandler{}
