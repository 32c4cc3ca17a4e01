package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osantanna/livraria-pos/pkg/metrics"
)

// Metrics records request count, latency and in-flight gauge per route.
// The route template (c.FullPath) is used as the path label so ids do not
// explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.HTTPRequestsInProgress.Inc()

		c.Next()

		metrics.HTTPRequestsInProgress.Dec()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
