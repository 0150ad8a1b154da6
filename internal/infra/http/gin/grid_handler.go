package ginserver

import (
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	"frontdesk/internal/app/dto"
	gridapp "frontdesk/internal/app/handlers/grid"
	"frontdesk/internal/app/queries"
	"frontdesk/internal/domain/shared/daterange"
)

type GridHandler struct {
	Queries queries.Bus
}

func (h GridHandler) Window(c *gin.Context) {
	offset := intQuery(c, "offset", 0)
	count := intQuery(c, "count", 14)
	cellWidth := intQuery(c, "cell_width", 0)

	query := gridapp.GetGridQuery{Offset: offset, Count: count, CellWidth: cellWidth}
	result, err := queries.Ask[gridapp.GetGridQuery, dto.Grid](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h GridHandler) Availability(c *gin.Context) {
	start, err := daterange.ParseDay(c.Query("start"))
	if err != nil {
		respondError(c, err)
		return
	}
	end, err := daterange.ParseDay(c.Query("end"))
	if err != nil {
		respondError(c, err)
		return
	}
	query := gridapp.CheckRangeQuery{RoomID: c.Param("id"), Start: start, End: end}
	result, err := queries.Ask[gridapp.CheckRangeQuery, dto.Availability](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func intQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

var _ GridHTTP = GridHandler{}
