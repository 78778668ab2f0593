package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/api/dto"
	applogger "github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/logger"
)

// ErrorHandler middleware recovers from panics and returns a 500 JSON body
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic recovered in API request", map[string]any{
					"error":      fmt.Sprint(r),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"client_ip":  c.ClientIP(),
					"request_id": applogger.RequestIDFrom(c.Request.Context()),
					"stack":      string(debug.Stack()),
				})

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.NewErrorResponse(domainerr.ErrInternalServer, "Internal server error"))
			}
		}()

		c.Next()
	}
}
