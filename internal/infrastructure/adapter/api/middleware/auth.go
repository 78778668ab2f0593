package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/security"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/api/dto"
)

// UserIDKey is the gin context key holding the authenticated user ID
const UserIDKey = "userId"

// Auth messages
const (
	MsgMissingToken  = "Not Authorized, Missing Token"
	MsgInvalidToken  = "Not Authorized, Invalid Token"
	MsgNoUserInToken = "Invalid Token"
)

// Auth verifies the session token and stores the user ID on the context
func Auth(tokens security.TokenService, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(domainerr.ErrMissingToken, MsgMissingToken))
			return
		}

		userID, err := tokens.Parse(token)
		if err != nil {
			logger.Debug("Token rejected", map[string]any{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(err, MsgInvalidToken))
			return
		}
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(domainerr.ErrInvalidToken, MsgNoUserInToken))
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// extractToken reads the "token" header and falls back to a bearer token
func extractToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader("token")); token != "" {
		return token
	}
	auth := c.GetHeader("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// UserID returns the authenticated user ID, or "" outside Auth
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
