package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	tport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
)

// TransactionStatus is a derived view of a purchase's lifecycle
type TransactionStatus string

// TransactionStatus constants
const (
	StatusPending   TransactionStatus = "pending"
	StatusOrdered   TransactionStatus = "ordered"
	StatusCompleted TransactionStatus = "completed"
)

// TransactionOption is a function that configures a Transaction
type TransactionOption func(*Transaction)

// WithOrderID sets the gateway order on a new transaction
func WithOrderID(orderID string) TransactionOption {
	return func(t *Transaction) {
		t.OrderID = orderID
	}
}

// Transaction records a credit purchase. Payment flips to true exactly once.
type Transaction struct {
	ID        string     // Unique identifier, also the gateway receipt
	UserID    string     // Buyer
	Plan      string     // Plan ID at purchase time
	Credits   int64      // Credits granted on settlement
	Amount    int64      // Price in major currency units
	Currency  string     // ISO currency code sent to the gateway
	Date      time.Time  // When the purchase was started
	Payment   bool       // True once the purchase credited the user
	OrderID   string     // Gateway order ID
	PaymentID string     // Gateway payment ID, set on settlement
	PaidAt    *time.Time // When the purchase was settled (nullable)
}

// NewTransaction creates a pending purchase of the given plan
func NewTransaction(
	id string,
	userID string,
	plan Plan,
	currency string,
	timeProvider tport.TimeProvider,
	opts ...TransactionOption,
) (*Transaction, error) {
	if id == "" {
		return nil, errs.ErrInvalidRequest
	}
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if plan.ID == "" || plan.Credits <= 0 {
		return nil, errs.ErrInvalidPlan
	}

	tx := &Transaction{
		ID:       id,
		UserID:   userID,
		Plan:     plan.ID,
		Credits:  plan.Credits,
		Amount:   plan.Amount,
		Currency: strings.ToUpper(strings.TrimSpace(currency)),
		Date:     timeProvider.Now(),
	}

	for _, opt := range opts {
		opt(tx)
	}

	return tx, nil
}

// MarkAsPaid records the settlement of the transaction
func (t *Transaction) MarkAsPaid(paymentID string, timeProvider tport.TimeProvider) error {
	if t.Payment {
		return errs.ErrPaymentAlreadyProcessed
	}

	now := timeProvider.Now()
	t.Payment = true
	t.PaymentID = paymentID
	t.PaidAt = &now
	return nil
}

// BelongsTo reports whether the transaction was started by userID
func (t *Transaction) BelongsTo(userID string) bool {
	return t.UserID == userID
}

// Status derives the lifecycle state from the stored fields
func (t *Transaction) Status() TransactionStatus {
	switch {
	case t.Payment:
		return StatusCompleted
	case t.OrderID != "":
		return StatusOrdered
	default:
		return StatusPending
	}
}
