package usecase

import (
	"context"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
)

// SettleRequest identifies a purchase to credit
type SettleRequest struct {
	TransactionID string
	PaymentID     string
}

// CreditUseCase is the single writer of credit balances
type CreditUseCase interface {
	// Consume takes n credits from the user, failing with ErrInsufficientCredits
	Consume(ctx context.Context, userID string, n int64) (*entity.User, error)

	// Settle marks a purchase paid and grants its credits in one database transaction
	// A purchase that was already settled fails with ErrPaymentAlreadyProcessed
	Settle(ctx context.Context, userID string, req SettleRequest) (*entity.User, error)
}
