package ginserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"frontdesk/internal/app/commands"
	"frontdesk/internal/app/dto"
	ratesapp "frontdesk/internal/app/handlers/rates"
)

type recordingBus struct {
	cmd    commands.Command
	result any
	err    error
	calls  int
}

func (b *recordingBus) Dispatch(_ context.Context, cmd commands.Command) (any, error) {
	b.calls++
	b.cmd = cmd
	return b.result, b.err
}

func ratesRouter(bus commands.Bus) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := RatesHandler{Commands: bus}
	r.POST("/api/v1/rates/bulk", h.BulkUpdate)
	return r
}

func postBulkRates(t *testing.T, r *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rates/bulk", bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bulkRatesBody() map[string]any {
	return map[string]any{
		"room_ids":         []string{"room-1"},
		"start_date":       "2025-06-02",
		"end_date":         "2025-06-08",
		"platforms":        []string{"airbnb"},
		"base_price_cents": 10000,
	}
}

func TestBulkUpdateDispatchesWeekdays(t *testing.T) {
	bus := &recordingBus{result: &dto.BulkRateResult{Rooms: 1, Targets: 2}}
	r := ratesRouter(bus)

	body := bulkRatesBody()
	body["weekdays"] = []int{0, 6}
	w := postBulkRates(t, r, body)

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Equal(t, 1, bus.calls)
	cmd, ok := bus.cmd.(ratesapp.BulkUpdateRatesCommand)
	require.True(t, ok)
	require.Equal(t, []time.Weekday{time.Sunday, time.Saturday}, cmd.Weekdays)
}

func TestBulkUpdateRejectsWeekdayOutsideRange(t *testing.T) {
	for _, wd := range []int{-1, 7, 12} {
		bus := &recordingBus{}
		r := ratesRouter(bus)

		body := bulkRatesBody()
		body["weekdays"] = []int{wd}
		w := postBulkRates(t, r, body)

		require.Equal(t, http.StatusBadRequest, w.Code, "weekday %d", wd)
		require.Zero(t, bus.calls, "weekday %d must not reach the bus", wd)
	}
}
