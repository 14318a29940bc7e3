package middleware

import (
	"fmt"
	"net/http"
	"time"

	"affiliatenest/internal/services"
	"affiliatenest/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware throttles a route by client IP using a Redis counter
// with a rolling window expiry. When the counter backend is unavailable the
// request is allowed through: throttling is protection, not correctness.
func RateLimitMiddleware(cache services.CacheService, name string, limit int64, window time.Duration, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", name, c.ClientIP())

		count, err := cache.Increment(c.Request.Context(), key, window)
		if err != nil {
			log.WithError(err).Warn("Rate limit counter unavailable")
			c.Next()
			return
		}

		if count > limit {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many attempts, please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
