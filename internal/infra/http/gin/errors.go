package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	blocksapp "frontdesk/internal/app/handlers/blocks"
	bookingapp "frontdesk/internal/app/handlers/booking"
	gridapp "frontdesk/internal/app/handlers/grid"
	"frontdesk/internal/app/policies"
	"frontdesk/internal/app/snapshot"
	domainrates "frontdesk/internal/domain/rates"
	"frontdesk/internal/domain/shared/daterange"
	domainsplit "frontdesk/internal/domain/split"
)

// respondError maps engine errors onto HTTP statuses: validation failures
// are 422 (the UI should have disabled the action), missing snapshot is 503,
// unknown entities 404, upstream mutation failures 502.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, snapshot.ErrNotLoaded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, bookingapp.ErrBookingNotFound),
		errors.Is(err, blocksapp.ErrBlockNotFound),
		errors.Is(err, gridapp.ErrUnknownRoom):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, policies.ErrService):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case isValidation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func isValidation(err error) bool {
	for _, sentinel := range []error{
		domainsplit.ErrUnsplittable,
		domainsplit.ErrDateOutsideWindow,
		domainrates.ErrInvalidRange,
		domainrates.ErrNoRooms,
		domainrates.ErrNoPlatforms,
		domainrates.ErrNegativePrice,
		domainrates.ErrInvalidDelta,
		domainrates.ErrNegativeDelta,
		gridapp.ErrInvalidRange,
		gridapp.ErrInvalidWindow,
		bookingapp.ErrUnknownRoom,
		daterange.ErrInvalidRange,
		daterange.ErrUnparsable,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
