package payment

import (
	"context"
	"errors"
	"net/http"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/usecase"
)

// VerifyPayment checks a completed checkout and credits the user at most once
func (s *Service) VerifyPayment(ctx context.Context, userID string, req usecase.VerifyRequest) (*usecase.VerifyResult, error) {
	if err := s.validator.ValidateVerify(userID, req); err != nil {
		if errors.Is(err, errs.ErrInvalidUserID) {
			return verifyFailure(http.StatusUnauthorized, MsgNotAuthorized), err
		}
		return verifyFailure(http.StatusBadRequest, MsgIDsRequired), err
	}

	if req.Signature != "" && !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		s.logger.Warn("Checkout signature mismatch", map[string]any{
			"user_id":    userID,
			"order_id":   req.OrderID,
			"payment_id": req.PaymentID,
		})
		return verifyFailure(http.StatusBadRequest, MsgInvalidSignature), errs.ErrInvalidSignature
	}

	order, err := s.gateway.FetchOrder(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, errs.ErrOrderNotFound) {
			return verifyFailure(http.StatusNotFound, MsgOrderNotFound), err
		}
		s.logger.Error("Failed to fetch order", map[string]any{
			"order_id": req.OrderID,
			"error":    err.Error(),
		})
		status, message := gatewayFailure(err)
		return verifyFailure(status, message), err
	}

	txn, processed, err := s.idempotency.CheckOrder(ctx, order)
	if err != nil {
		if errors.Is(err, errs.ErrTransactionNotFound) {
			return verifyFailure(http.StatusNotFound, MsgTransactionNotFound), err
		}
		return verifyFailure(http.StatusInternalServerError, MsgInternalError), err
	}
	if processed {
		return verifyFailure(http.StatusBadRequest, MsgAlreadyProcessed), errs.ErrPaymentAlreadyProcessed
	}

	if !txn.BelongsTo(userID) {
		s.logger.Warn("Verify attempted by another user", map[string]any{
			"user_id":        userID,
			"transaction_id": txn.ID,
		})
		return verifyFailure(http.StatusForbidden, MsgUnauthorizedAccess), errs.ErrUnauthorizedAccess
	}

	payment, err := s.gateway.FetchPayment(ctx, req.PaymentID)
	if err != nil {
		s.logger.Warn("Failed to fetch payment", map[string]any{
			"payment_id": req.PaymentID,
			"error":      err.Error(),
		})
		return verifyFailure(http.StatusBadRequest, MsgInvalidPaymentID), errs.ErrInvalidPaymentID
	}
	if payment.OrderID != "" && payment.OrderID != order.ID {
		return verifyFailure(http.StatusBadRequest, MsgInvalidPaymentID), errs.ErrInvalidPaymentID
	}
	if !payment.IsSuccessful() {
		return verifyFailure(http.StatusBadRequest, MsgPaymentNotSuccessful), errs.ErrPaymentNotSuccessful
	}

	user, err := s.credits.Settle(ctx, userID, usecase.SettleRequest{
		TransactionID: txn.ID,
		PaymentID:     req.PaymentID,
	})
	if err != nil {
		status, message := settleFailure(err)
		return verifyFailure(status, message), err
	}

	return &usecase.VerifyResult{
		Success:       true,
		Message:       MsgCreditsAdded,
		CreditBalance: user.CreditBalance(),
		StatusCode:    http.StatusOK,
	}, nil
}

func verifyFailure(status int, message string) *usecase.VerifyResult {
	return &usecase.VerifyResult{
		Success:    false,
		Message:    message,
		StatusCode: status,
	}
}

func settleFailure(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrPaymentAlreadyProcessed):
		return http.StatusBadRequest, MsgAlreadyProcessed
	case errs.IsUserNotFoundError(err):
		return http.StatusNotFound, MsgUserNotFound
	case errors.Is(err, errs.ErrTransactionNotFound):
		return http.StatusNotFound, MsgTransactionNotFound
	case errors.Is(err, errs.ErrUnauthorizedAccess):
		return http.StatusForbidden, MsgUnauthorizedAccess
	case errs.IsUserLockedError(err):
		return http.StatusConflict, MsgPaymentInProgress
	default:
		return http.StatusInternalServerError, MsgInternalError
	}
}
