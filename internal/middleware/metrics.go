package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sms-portal/internal/service"
)

// Metrics records latency and status for every handled request. Scrapes of
// the exposition endpoint itself are not observed so they do not skew the
// portal's latency histogram.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
