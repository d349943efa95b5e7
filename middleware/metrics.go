package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestRecorder receives one observation per handled request.
type RequestRecorder interface {
	ObserveRequest(method, route, status string, elapsed time.Duration)
}

// RequestMetrics reports each request under its route template, so /zones/:id
// is one series regardless of the id. Unmatched paths are reported as
// "unmatched".
func RequestMetrics(rec RequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		rec.ObserveRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(started))
	}
}
