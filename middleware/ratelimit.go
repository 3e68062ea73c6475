package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"lexitrivia/metrics"
	"lexitrivia/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter throttles per client IP using fixed windows in Redis. Redis
// unavailability fails open: throttling protects capacity, not correctness.
type RateLimiter struct {
	rdb *redis.Client
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{rdb: rdb}
}

// Limit allows at most max requests per window per IP for the named scope.
func (rl *RateLimiter) Limit(name string, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", name, c.ClientIP())

		count, err := rl.rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Printf("Rate limiter unavailable, allowing request: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			rl.rdb.Expire(c.Request.Context(), key, window)
		}

		if count > int64(max) {
			metrics.RateLimitDroppedTotal.Inc()
			response.Error(c, http.StatusTooManyRequests, "Too many requests from this IP, please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}
