package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"frontdesk/internal/infra/config"
	"frontdesk/internal/infra/obs"
)

type GridHTTP interface {
	Window(c *gin.Context)
	Availability(c *gin.Context)
}

type BookingHTTP interface {
	Split(c *gin.Context)
}

type RatesHTTP interface {
	BulkUpdate(c *gin.Context)
}

type BlocksHTTP interface {
	Unblock(c *gin.Context)
}

type Handlers struct {
	Grid    GridHTTP
	Booking BookingHTTP
	Rates   RatesHTTP
	Blocks  BlocksHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Grid != nil {
		api.GET("/grid", h.Grid.Window)
		api.GET("/rooms/:id/availability", h.Grid.Availability)
	}
	if h.Booking != nil {
		api.POST("/bookings/:id/split", h.Booking.Split)
	}
	if h.Rates != nil {
		api.POST("/rates/bulk", h.Rates.BulkUpdate)
	}
	if h.Blocks != nil {
		api.DELETE("/blocks/:id", h.Blocks.Unblock)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
