package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/imagify/internal/domain/usecase/image"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/api/middleware"
)

// ImageHandler handles image generation requests
type ImageHandler struct {
	imageUseCase usecase.ImageUseCase
	logger       coreport.Logger
}

// NewImageHandler creates a new image handler instance
func NewImageHandler(imageUseCase usecase.ImageUseCase, logger coreport.Logger) *ImageHandler {
	return &ImageHandler{
		imageUseCase: imageUseCase,
		logger:       logger,
	}
}

// GenerateImage handles POST /api/image/generate-image
func (h *ImageHandler) GenerateImage(c *gin.Context) {
	var req dto.PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, domainerr.ErrPromptRequired, image.MsgPromptRequired)
		return
	}

	result, err := h.imageUseCase.GenerateImage(c.Request.Context(), middleware.UserID(c), req.Prompt)
	if result == nil {
		fail(c, http.StatusInternalServerError, err, MsgInternalError)
		return
	}

	resp := dto.NewImageResponse(result)
	if err != nil {
		_ = c.Error(err)
		resp.Code = domainerr.ErrorCode(err)
		if result.RetryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(result.RetryAfter))
		}
	}
	c.JSON(result.StatusCode, resp)
}

// EnhancePrompt handles POST /api/image/enhance-prompt
func (h *ImageHandler) EnhancePrompt(c *gin.Context) {
	var req dto.PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, domainerr.ErrPromptRequired, image.MsgPromptRequired)
		return
	}

	result, err := h.imageUseCase.EnhancePrompt(req.Prompt)
	if err != nil {
		message := image.MsgPromptRequired
		if errors.Is(err, domainerr.ErrPromptTooLong) {
			message = image.MsgPromptTooLong
		}
		fail(c, http.StatusBadRequest, err, message)
		return
	}

	c.JSON(http.StatusOK, dto.EnhanceResponse{
		Success:    true,
		Original:   result.Original,
		Enhanced:   result.Enhanced,
		Variations: result.Variations,
	})
}
