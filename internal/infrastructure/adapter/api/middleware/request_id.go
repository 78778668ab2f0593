package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	applogger "github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/logger"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// RequestID reuses the caller's request ID or mints one, and puts it on the request context
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(applogger.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}
