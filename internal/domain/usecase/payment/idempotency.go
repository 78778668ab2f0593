package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/persistence"
)

// IdempotencyHandler finds the purchase behind a gateway order and reports whether it already settled
type IdempotencyHandler struct {
	uow persistence.UnitOfWork
}

// NewIdempotencyHandler creates a new IdempotencyHandler
func NewIdempotencyHandler(uow persistence.UnitOfWork) *IdempotencyHandler {
	return &IdempotencyHandler{
		uow: uow,
	}
}

// CheckOrder returns the transaction for the order and whether it has been paid
func (h *IdempotencyHandler) CheckOrder(
	ctx context.Context,
	order *gateway.Order,
) (*entity.Transaction, bool, error) {
	txRepo := h.uow.GetTransactionRepository(ctx)

	// The receipt is the transaction ID
	txn, err := txRepo.GetByID(ctx, order.Receipt)
	if errors.Is(err, errs.ErrTransactionNotFound) && order.ID != "" {
		txn, err = txRepo.GetByOrderID(ctx, order.ID)
	}
	if err != nil {
		if errors.Is(err, errs.ErrTransactionNotFound) {
			return nil, false, err
		}
		return nil, false, fmt.Errorf("failed to load transaction for order %s: %w", order.ID, err)
	}

	return txn, txn.Payment, nil
}
