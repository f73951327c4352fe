package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aws-community-vadodara/feedback-hub/pkg/response"
)

// RateLimit returns a fixed-window per-IP rate limiting middleware backed by
// Redis. Counters live in Redis so the limit holds across replicas. When
// Redis is unreachable the request is let through; availability wins over
// throttling accuracy here.
func RateLimit(rdb *redis.Client, window time.Duration, max int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), time.Now().Unix()/int64(window.Seconds()))

		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			logger.Warn("rate limit counter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(c.Request.Context(), key, window)
		}
		if count > int64(max) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			response.TooManyRequests(c, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
