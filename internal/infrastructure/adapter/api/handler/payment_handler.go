package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/api/middleware"
)

// PaymentHandler handles credit purchase requests
type PaymentHandler struct {
	paymentUseCase usecase.PaymentUseCase
	logger         coreport.Logger
}

// NewPaymentHandler creates a new payment handler instance
func NewPaymentHandler(paymentUseCase usecase.PaymentUseCase, logger coreport.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
		logger:         logger,
	}
}

// CreateOrder handles POST /api/user/pay-razor
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req dto.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, domainerr.ErrMissingDetails, MsgMissingDetails)
		return
	}

	result, err := h.paymentUseCase.CreateOrder(c.Request.Context(), middleware.UserID(c), req.PlanID)
	if result == nil {
		fail(c, http.StatusInternalServerError, err, MsgInternalError)
		return
	}
	if err != nil {
		fail(c, result.StatusCode, err, result.Message)
		return
	}

	c.JSON(http.StatusOK, dto.OrderResponse{
		Success:       true,
		Order:         result.Order,
		TransactionID: result.TransactionID,
		KeyID:         result.KeyID,
	})
}

// VerifyPayment handles POST /api/user/verify-razor
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, domainerr.ErrMissingDetails, "Order ID and Payment ID are required")
		return
	}

	result, err := h.paymentUseCase.VerifyPayment(c.Request.Context(), middleware.UserID(c), usecase.VerifyRequest{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if result == nil {
		fail(c, http.StatusInternalServerError, err, MsgInternalError)
		return
	}
	if err != nil {
		if !errors.Is(err, domainerr.ErrPaymentAlreadyProcessed) {
			h.logger.Warn("Payment verification failed", map[string]any{
				"user_id":    middleware.UserID(c),
				"order_id":   req.OrderID,
				"payment_id": req.PaymentID,
				"status":     result.StatusCode,
				"error":      err.Error(),
			})
		}
		fail(c, result.StatusCode, err, result.Message)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyResponse{
		Success:       true,
		Message:       result.Message,
		CreditBalance: result.CreditBalance,
	})
}

// Transactions handles GET /api/user/transactions
func (h *PaymentHandler) Transactions(c *gin.Context) {
	userID := middleware.UserID(c)

	txns, err := h.paymentUseCase.ListTransactions(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domainerr.ErrInvalidUserID) {
			fail(c, http.StatusUnauthorized, err, MsgNotAuthorized)
			return
		}
		h.logger.Error("Error listing transactions", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		fail(c, http.StatusInternalServerError, err, MsgInternalError)
		return
	}

	resp := dto.TransactionsResponse{
		Success:      true,
		Transactions: make([]dto.TransactionResponse, 0, len(txns)),
	}
	for _, t := range txns {
		resp.Transactions = append(resp.Transactions, dto.NewTransactionResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

// Plans handles GET /api/user/plans
func (h *PaymentHandler) Plans(c *gin.Context) {
	plans := h.paymentUseCase.Plans()

	resp := dto.PlansResponse{Success: true, Plans: make([]dto.PlanResponse, 0, len(plans))}
	for _, p := range plans {
		resp.Plans = append(resp.Plans, dto.PlanResponse{
			ID:      p.ID,
			Credits: p.Credits,
			Price:   p.Amount,
			Desc:    p.Desc,
		})
	}
	c.JSON(http.StatusOK, resp)
}
