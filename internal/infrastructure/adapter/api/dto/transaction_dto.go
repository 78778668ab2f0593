package dto

import (
	"time"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/gateway"
)

// PayRequest starts a purchase
type PayRequest struct {
	PlanID string `json:"planId"`
}

// OrderResponse carries the gateway order to the checkout widget
type OrderResponse struct {
	Success       bool           `json:"success"`
	Order         *gateway.Order `json:"order"`
	TransactionID string         `json:"transactionId,omitempty"`
	KeyID         string         `json:"key,omitempty"`
}

// VerifyRequest is the checkout callback payload
type VerifyRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// VerifyResponse reports the credited balance
type VerifyResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	CreditBalance int64  `json:"creditBalance"`
}

// TransactionResponse is one purchase in the history
type TransactionResponse struct {
	ID        string     `json:"_id"`
	UserID    string     `json:"userId"`
	Plan      string     `json:"plan"`
	Credits   int64      `json:"credits"`
	Amount    int64      `json:"amount"`
	Currency  string     `json:"currency"`
	Date      int64      `json:"date"` // unix millis
	Payment   bool       `json:"payment"`
	Status    string     `json:"status"`
	OrderID   string     `json:"orderId,omitempty"`
	PaymentID string     `json:"paymentId,omitempty"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
}

// TransactionsResponse lists the caller's purchases
type TransactionsResponse struct {
	Success      bool                  `json:"success"`
	Transactions []TransactionResponse `json:"transactions"`
}

// PlanResponse is one purchasable package
type PlanResponse struct {
	ID      string `json:"id"`
	Credits int64  `json:"credits"`
	Price   int64  `json:"price"`
	Desc    string `json:"desc"`
}

// PlansResponse lists the catalog
type PlansResponse struct {
	Success bool           `json:"success"`
	Plans   []PlanResponse `json:"plans"`
}

// NewTransactionResponse maps a transaction entity
func NewTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		Plan:      t.Plan,
		Credits:   t.Credits,
		Amount:    t.Amount,
		Currency:  t.Currency,
		Date:      t.Date.UnixMilli(),
		Payment:   t.Payment,
		Status:    string(t.Status()),
		OrderID:   t.OrderID,
		PaymentID: t.PaymentID,
		PaidAt:    t.PaidAt,
	}
}
