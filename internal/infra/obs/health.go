package obs

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandlers exposes endpoints for liveness and readiness checks.
// Readiness gates on the first snapshot load: a grid server with no model
// yet cannot answer anything useful.
type HealthHandlers struct {
	Ready func() error
}

func (h HealthHandlers) Livez(c *gin.Context) {
	c.Status(http.StatusOK)
}

func (h HealthHandlers) Readyz(c *gin.Context) {
	if h.Ready != nil {
		if err := h.Ready(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
			return
		}
	}
	c.Status(http.StatusOK)
}
