package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/api/dto"
)

// Pinger checks a backing dependency
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves status and health endpoints
type SystemHandler struct {
	db           Pinger
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db Pinger, timeProvider coreport.TimeProvider, logger coreport.Logger) *SystemHandler {
	return &SystemHandler{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Status handles GET / outside production
func (h *SystemHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "IMAGIFY API is working",
		"status":    "online",
		"timestamp": h.timeProvider.Now().Format(time.RFC3339Nano),
	})
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("Health check failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(domainerr.ErrDatabaseConnection, "database unavailable"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"status":   "ok",
		"database": "up",
	})
}
