package middleware

import (
	"context"
	"net/http"

	"nest/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

type Gate interface {
	Open(ctx context.Context) (bool, error)
}

// Greenlight turns webhook senders away until an operator opens the gate.
// A nil gate lets everything through.
func Greenlight(gate Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if gate == nil {
			c.Next()
			return
		}
		open, err := gate.Open(c.Request.Context())
		if err != nil {
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Cannot determine greenlight status", nil)
			return
		}
		if !open {
			httperr.AbortWithError(c, http.StatusForbidden, errGateClosed, "Endpoint is not accepting deliveries at this time", nil)
			return
		}
		c.Next()
	}
}
