package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/stagelist/backend/config"
	"github.com/stagelist/backend/pkg/response"
)

// RateLimit returns a fixed-window per-client limiter backed by Redis.
// When disabled or when no Redis client is available it degrades to a
// no-op, so the API keeps serving without Redis.
func RateLimit(cfg config.RateLimitConfig, rdb *goredis.Client, logger *zap.Logger) gin.HandlerFunc {
	if !cfg.Enabled || rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}
	window := time.Duration(cfg.WindowSec) * time.Second

	return func(c *gin.Context) {
		bucket := time.Now().Unix() / int64(cfg.WindowSec)
		key := fmt.Sprintf("rl:%s:%d", c.ClientIP(), bucket)

		pipe := rdb.TxPipeline()
		incr := pipe.Incr(c.Request.Context(), key)
		pipe.Expire(c.Request.Context(), key, window)
		if _, err := pipe.Exec(c.Request.Context()); err != nil {
			// limiter failure must not take the API down
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if incr.Val() > int64(cfg.Requests) {
			response.TooManyRequests(c, "rate limit exceeded")
			c.Abort()
			return
		}
		c.Next()
	}
}
