package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	metrics "github.com/phillip/ngo-portal-go/metrics"
)

// Metrics counts requests by route pattern so ids don't explode the label set.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Inc()
	}
}
