package gateway

import "context"

// OrderRequest is the input to create a gateway order
type OrderRequest struct {
	Amount   int64 // subunits
	Currency string
	Receipt  string
	Notes    map[string]string
}

// Order mirrors the gateway's order resource
type Order struct {
	ID         string            `json:"id"`
	Entity     string            `json:"entity"`
	Amount     int64             `json:"amount"`
	AmountPaid int64             `json:"amount_paid"`
	AmountDue  int64             `json:"amount_due"`
	Currency   string            `json:"currency"`
	Receipt    string            `json:"receipt"`
	Status     string            `json:"status"`
	Attempts   int               `json:"attempts"`
	Notes      map[string]string `json:"notes,omitempty"`
	CreatedAt  int64             `json:"created_at"`
}

// Payment mirrors the gateway's payment resource
type Payment struct {
	ID       string `json:"id"`
	Entity   string `json:"entity"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	OrderID  string `json:"order_id"`
	Method   string `json:"method"`
	Captured bool   `json:"captured"`
}

// Payment statuses that count as paid
const (
	PaymentStatusCaptured   = "captured"
	PaymentStatusAuthorized = "authorized"
)

// IsSuccessful reports whether the payment counts as paid
func (p *Payment) IsSuccessful() bool {
	return p.Status == PaymentStatusCaptured || p.Status == PaymentStatusAuthorized
}

// PaymentGateway creates orders and reads back payment state
type PaymentGateway interface {
	// CreateOrder registers a new order with the gateway
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)

	// FetchOrder reads an order by ID
	//
	// Possible errors:
	// - ErrOrderNotFound: If the gateway has no such order
	FetchOrder(ctx context.Context, orderID string) (*Order, error)

	// FetchPayment reads a payment by ID
	FetchPayment(ctx context.Context, paymentID string) (*Payment, error)

	// VerifySignature checks the checkout signature for an order/payment pair
	VerifySignature(orderID, paymentID, signature string) bool

	// KeyID is the public key the checkout widget needs
	KeyID() string
}
