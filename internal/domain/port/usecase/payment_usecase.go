package usecase

import (
	"context"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/gateway"
)

// OrderResult contains the gateway order for a new purchase
type OrderResult struct {
	Success       bool
	Order         *gateway.Order
	TransactionID string
	KeyID         string
	Message       string
	StatusCode    int // HTTP status code
}

// VerifyRequest carries the checkout callback fields
type VerifyRequest struct {
	OrderID   string
	PaymentID string
	Signature string
}

// VerifyResult contains info about a verified payment
type VerifyResult struct {
	Success       bool
	Message       string
	CreditBalance int64
	StatusCode    int // HTTP status code
}

// PaymentUseCase defines methods for credit purchases
type PaymentUseCase interface {
	// CreateOrder starts a purchase of planID for the user
	CreateOrder(ctx context.Context, userID string, planID string) (*OrderResult, error)

	// VerifyPayment checks a completed checkout and credits the user once
	VerifyPayment(ctx context.Context, userID string, req VerifyRequest) (*VerifyResult, error)

	// ListTransactions returns the user's purchases, newest first
	ListTransactions(ctx context.Context, userID string) ([]*entity.Transaction, error)

	// Plans returns the purchasable credit packages
	Plans() []entity.Plan
}
