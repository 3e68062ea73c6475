package middleware

import (
	"time"

	"lexitrivia/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics instruments every request with volume, concurrency and latency
// collectors.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.RequestsTotal.Inc()
		metrics.ActiveRequests.Inc()
		start := time.Now()

		c.Next()

		metrics.ActiveRequests.Dec()
		metrics.RequestDurationSeconds.Observe(time.Since(start).Seconds())
	}
}
