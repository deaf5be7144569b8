package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Payphone-Digital/property-api/internal/dto"
	apperrors "github.com/Payphone-Digital/property-api/internal/errors"
	ctxutil "github.com/Payphone-Digital/property-api/pkg/context"
	"github.com/Payphone-Digital/property-api/pkg/logger"
)

// RequestLogging writes one structured line per request after the handler
// chain finishes.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		ctx := c.Request.Context()
		logger.LogRequest(
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start).Milliseconds(),
			ctxutil.GetClientIP(ctx),
			ctxutil.GetUserAgent(ctx),
		)
	}
}

// Recovery turns panics into a 500 envelope instead of a dropped
// connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorWithContext(c.Request.Context(), "panic recovered").
					Any("panic", r).
					String("path", c.Request.URL.Path).
					Log()

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.ErrorResponse(apperrors.ErrInternal.Message))
			}
		}()
		c.Next()
	}
}
