package middleware

import (
	"github.com/gin-gonic/gin"

	ctxutil "github.com/Payphone-Digital/property-api/pkg/context"
)

// RequestContext seeds every request with the identifiers the log builder
// reads: request id, client address, start time. The request id is echoed
// back in X-Request-ID so callers can correlate.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ctxutil.NewContext(c.Request.Context(), c.Request, "http", c.FullPath())
		c.Request = c.Request.WithContext(ctx)

		c.Header("X-Request-ID", ctxutil.GetRequestID(ctx))
		c.Next()
	}
}
