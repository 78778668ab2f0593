package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/api/dto"
)

// Shared client-facing messages
const (
	MsgInvalidRequest = "Invalid request format"
	MsgInternalError  = "Internal server error"
	MsgNotAuthorized  = "Not Authorized. Login Again"
)

// fail writes the standard error body
func fail(c *gin.Context, status int, err error, message string) {
	if err != nil {
		_ = c.Error(err)
	}
	c.JSON(status, dto.NewErrorResponse(err, message))
}
