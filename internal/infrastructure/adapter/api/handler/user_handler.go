package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/api/middleware"
)

// User messages
const (
	MsgMissingDetails     = "Missing Details"
	MsgEmailRegistered    = "Email already registered"
	MsgUserDoesNotExist   = "User does not exist"
	MsgInvalidCredentials = "Invalid credentials"
	MsgUserNotFound       = "User not found"
)

// UserHandler handles account and credit balance requests
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(
	userUseCase usecase.UserUseCase,
	logger coreport.Logger,
) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// Register handles POST /api/user/register
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, domainerr.ErrInvalidRequest, MsgInvalidRequest)
		return
	}

	result, err := h.userUseCase.Register(c.Request.Context(), usecase.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainerr.ErrMissingDetails):
			fail(c, http.StatusBadRequest, err, MsgMissingDetails)
		case errors.Is(err, domainerr.ErrEmailAlreadyRegistered), errors.Is(err, domainerr.ErrDuplicateUser):
			fail(c, http.StatusBadRequest, err, MsgEmailRegistered)
		default:
			h.logger.Error("Registration failed", map[string]any{
				"error": err.Error(),
			})
			fail(c, http.StatusInternalServerError, err, MsgInternalError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Success: true,
		Token:   result.Token,
		User:    dto.NewUserResponse(result.User),
	})
}

// Login handles POST /api/user/login
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, domainerr.ErrInvalidRequest, MsgInvalidRequest)
		return
	}

	result, err := h.userUseCase.Login(c.Request.Context(), usecase.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainerr.ErrMissingDetails):
			fail(c, http.StatusBadRequest, err, MsgMissingDetails)
		case domainerr.IsUserNotFoundError(err):
			fail(c, http.StatusNotFound, err, MsgUserDoesNotExist)
		case errors.Is(err, domainerr.ErrInvalidCredentials):
			fail(c, http.StatusUnauthorized, err, MsgInvalidCredentials)
		default:
			h.logger.Error("Login failed", map[string]any{
				"error": err.Error(),
			})
			fail(c, http.StatusInternalServerError, err, MsgInternalError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Token:   result.Token,
		User:    dto.NewUserResponse(result.User),
	})
}

// Credits handles GET|POST /api/user/credits
func (h *UserHandler) Credits(c *gin.Context) {
	userID := middleware.UserID(c)

	user, err := h.userUseCase.GetCredits(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domainerr.ErrInvalidUserID):
			fail(c, http.StatusUnauthorized, err, MsgNotAuthorized)
		case domainerr.IsUserNotFoundError(err):
			fail(c, http.StatusNotFound, err, MsgUserNotFound)
		default:
			h.logger.Error("Error getting user credits", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
			fail(c, http.StatusInternalServerError, err, MsgInternalError)
		}
		return
	}

	c.JSON(http.StatusOK, entity.UserToCreditsResponse(user))
}
