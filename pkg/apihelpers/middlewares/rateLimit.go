package middlewares

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit is a fixed window limiter per client IP, counters kept in Redis.
// With a nil client the limiter is disabled.
func RateLimit(redisCli *redis.Client, maxRequests int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisCli == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s:%d", clientIPFromRequest(c), time.Now().Unix()/int64(window.Seconds()))

		count, err := redisCli.Incr(ctx, key).Result()
		if err != nil {
			// a broken limiter should not take the API down
			slog.Error("rate limit counter unavailable", slog.String("error", err.Error()))
			c.Next()
			return
		}
		if count == 1 {
			if err := redisCli.Expire(ctx, key, window).Err(); err != nil {
				slog.Error("cannot set rate limit key expiry", slog.String("error", err.Error()))
			}
		}

		if count > maxRequests {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status": http.StatusTooManyRequests,
				"error":  "Too many requests, please try again after a minute.",
			})
			return
		}
		c.Next()
	}
}
