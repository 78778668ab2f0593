package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestRecorder receives HTTP request measurements
type RequestRecorder interface {
	RequestStarted() func()
	ObserveRequest(method, path string, status int, elapsed time.Duration)
}

// Metrics records every request except the scrape itself
func Metrics(recorder RequestRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		done := recorder.RequestStarted()
		start := time.Now()
		c.Next()
		done()

		// route template keeps label cardinality bounded
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		recorder.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
