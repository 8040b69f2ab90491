package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parkgrid/parkgrid-api/internal/service"
)

// Metrics observes every request with method, route template, status and
// duration. Requests that matched no route all share one "unmatched"
// label to keep the label space bounded.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	if metricsSvc == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(started))
	}
}
