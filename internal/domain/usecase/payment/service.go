package payment

import (
	"context"
	"errors"
	"net/http"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/usecase"
)

// Client-facing messages
const (
	MsgMissingDetails       = "Missing Details"
	MsgInvalidPlan          = "Invalid Plan"
	MsgIDsRequired          = "Order ID and Payment ID are required"
	MsgOrderNotFound        = "Order not found"
	MsgTransactionNotFound  = "Transaction not found"
	MsgAlreadyProcessed     = "Payment already processed"
	MsgUnauthorizedAccess   = "Unauthorized access"
	MsgInvalidPaymentID     = "Invalid payment ID"
	MsgPaymentNotSuccessful = "Payment not successful"
	MsgInvalidSignature     = "Invalid payment signature"
	MsgUserNotFound         = "User not found"
	MsgCreditsAdded         = "Credits Added"
	MsgNotAuthorized        = "Not Authorized. Login Again"
	MsgPaymentInProgress    = "Payment is being processed. Please try again."
	MsgServiceUnavailable   = "Service temporarily unavailable. Please try again later."
	MsgInternalError        = "Internal server error"
)

const transactionHistoryLimit = 100

// IDGenerator returns a new unique transaction ID
type IDGenerator func() string

// Service implements credit purchases against the payment gateway
type Service struct {
	gateway      gateway.PaymentGateway
	uow          persistence.UnitOfWork
	credits      usecase.CreditUseCase
	validator    *PaymentValidator
	idempotency  *IdempotencyHandler
	newID        IDGenerator
	currency     string
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a new payment service
func NewService(
	paymentGateway gateway.PaymentGateway,
	uow persistence.UnitOfWork,
	credits usecase.CreditUseCase,
	newID IDGenerator,
	currency string,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		gateway:      paymentGateway,
		uow:          uow,
		credits:      credits,
		validator:    NewPaymentValidator(),
		idempotency:  NewIdempotencyHandler(uow),
		newID:        newID,
		currency:     currency,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

var _ usecase.PaymentUseCase = (*Service)(nil)

// CreateOrder records a pending purchase and opens a gateway order for it
func (s *Service) CreateOrder(ctx context.Context, userID string, planID string) (*usecase.OrderResult, error) {
	plan, err := s.validator.ValidateOrder(userID, planID)
	if err != nil {
		if errors.Is(err, errs.ErrInvalidPlan) {
			return orderFailure(http.StatusBadRequest, MsgInvalidPlan), err
		}
		return orderFailure(http.StatusBadRequest, MsgMissingDetails), err
	}

	txn, err := entity.NewTransaction(s.newID(), userID, plan, s.currency, s.timeProvider)
	if err != nil {
		return orderFailure(http.StatusBadRequest, MsgInvalidPlan), err
	}

	txRepo := s.uow.GetTransactionRepository(ctx)
	if err := txRepo.Create(ctx, txn); err != nil {
		s.logger.Error("Failed to record purchase", map[string]any{
			"user_id": userID,
			"plan":    plan.ID,
			"error":   err.Error(),
		})
		return orderFailure(http.StatusInternalServerError, MsgInternalError), err
	}

	subunits, err := entity.ToSubunits(plan.Amount)
	if err != nil {
		return orderFailure(http.StatusInternalServerError, MsgInternalError), err
	}

	order, err := s.gateway.CreateOrder(ctx, gateway.OrderRequest{
		Amount:   subunits,
		Currency: txn.Currency,
		Receipt:  txn.ID,
		Notes: map[string]string{
			"userId": userID,
			"plan":   plan.ID,
		},
	})
	if err != nil {
		s.logger.Error("Failed to create gateway order", map[string]any{
			"user_id":        userID,
			"transaction_id": txn.ID,
			"error":          err.Error(),
		})
		status, message := gatewayFailure(err)
		return orderFailure(status, message), err
	}

	txn.OrderID = order.ID
	if err := txRepo.Update(ctx, txn); err != nil {
		// verify still finds the purchase through the receipt
		s.logger.Warn("Failed to attach order to purchase", map[string]any{
			"transaction_id": txn.ID,
			"order_id":       order.ID,
			"error":          err.Error(),
		})
	}

	s.logger.Info("Order created", map[string]any{
		"user_id":        userID,
		"transaction_id": txn.ID,
		"order_id":       order.ID,
		"plan":           plan.ID,
		"amount":         entity.FormatAmount(plan.Amount),
		"currency":       txn.Currency,
	})

	return &usecase.OrderResult{
		Success:       true,
		Order:         order,
		TransactionID: txn.ID,
		KeyID:         s.gateway.KeyID(),
		StatusCode:    http.StatusOK,
	}, nil
}

// ListTransactions returns the user's purchases, newest first
func (s *Service) ListTransactions(ctx context.Context, userID string) ([]*entity.Transaction, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}

	return s.uow.GetTransactionRepository(ctx).ListByUser(ctx, userID, transactionHistoryLimit)
}

// Plans returns the purchasable credit packages
func (s *Service) Plans() []entity.Plan {
	return entity.Plans()
}

func orderFailure(status int, message string) *usecase.OrderResult {
	return &usecase.OrderResult{
		Success:    false,
		Message:    message,
		StatusCode: status,
	}
}

// gatewayFailure maps a gateway error to a status and a client message
func gatewayFailure(err error) (int, string) {
	if errors.Is(err, errs.ErrProviderUnavailable) || errors.Is(err, errs.ErrProviderTimeout) {
		return http.StatusServiceUnavailable, MsgServiceUnavailable
	}
	if perr, ok := errs.AsProviderError(err); ok {
		return http.StatusBadGateway, perr.Message
	}
	return http.StatusInternalServerError, MsgInternalError
}
