package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Payphone-Digital/property-api/config"
	"github.com/Payphone-Digital/property-api/internal/dto"
	ctxutil "github.com/Payphone-Digital/property-api/pkg/context"
	"github.com/Payphone-Digital/property-api/pkg/logger"
	"github.com/Payphone-Digital/property-api/pkg/redis"
)

// RateLimit is a fixed-window per-client limiter backed by redis. The first
// hit in a window creates the counter with a TTL, later hits increment it.
// When redis is down the request goes through; availability beats strict
// limiting here.
func RateLimit(client *redis.Client, cfg config.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled || !client.Enabled() {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s", ctxutil.GetClientIP(ctx))

		count, err := client.Incr(ctx, key)
		if err != nil {
			logger.WarnWithContext(ctx, "rate limiter unavailable, letting request through").
				Err(err).
				Log()
			c.Next()
			return
		}

		if count == 1 {
			if err := client.Expire(ctx, key, cfg.Duration); err != nil {
				logger.WarnWithContext(ctx, "failed to set rate limit window").
					Err(err).
					Log()
			}
		}

		remaining := int64(cfg.Request) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Request))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(cfg.Request) {
			logger.WarnWithContext(ctx, "rate limit exceeded").
				String("key", key).
				Int64("count", count).
				Log()

			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.ErrorResponse("Too many requests"))
			return
		}

		c.Next()
	}
}
