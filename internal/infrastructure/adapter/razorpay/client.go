package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/upstream"
)

const (
	providerName = "razorpay"

	// DefaultBaseURL is the REST API root
	DefaultBaseURL = "https://api.razorpay.com/v1"
	// DefaultTimeout bounds one API call
	DefaultTimeout = 15 * time.Second

	maxBodyBytes = 1 << 20
)

// Config holds the API credentials
type Config struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Timeout   time.Duration
}

// Client talks to the Razorpay orders and payments API
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     coreport.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithBreakerObserver reports breaker transitions
func WithBreakerObserver(observe upstream.StateObserver) Option {
	return func(cl *Client) {
		cl.breaker = upstream.NewBreaker[[]byte](upstream.DefaultBreakerConfig(providerName), cl.logger, observe)
	}
}

// NewClient creates a Razorpay client
func NewClient(cfg Config, logger coreport.Logger, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		keyID:      cfg.KeyID,
		keySecret:  cfg.KeySecret,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
	c.breaker = upstream.NewBreaker[[]byte](upstream.DefaultBreakerConfig(providerName), logger, nil)

	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ gateway.PaymentGateway = (*Client)(nil)

// orderPayload is the create-order request body
type orderPayload struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt,omitempty"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// errorEnvelope is the API's error shape
type errorEnvelope struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// KeyID returns the public key
func (c *Client) KeyID() string {
	return c.keyID
}

// CreateOrder registers an order for the given amount in subunits
func (c *Client) CreateOrder(ctx context.Context, req gateway.OrderRequest) (*gateway.Order, error) {
	payload, err := json.Marshal(orderPayload{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}

	raw, err := c.call(ctx, http.MethodPost, "/orders", payload)
	if err != nil {
		return nil, err
	}

	var order gateway.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}

	c.logger.Info("Gateway order created", map[string]any{
		"order_id": order.ID,
		"receipt":  order.Receipt,
		"amount":   order.Amount,
	})
	return &order, nil
}

// FetchOrder reads an order; unknown IDs map to ErrOrderNotFound
func (c *Client) FetchOrder(ctx context.Context, orderID string) (*gateway.Order, error) {
	raw, err := c.call(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID), nil)
	if err != nil {
		if pe, ok := errs.AsProviderError(err); ok &&
			(pe.StatusCode == http.StatusBadRequest || pe.StatusCode == http.StatusNotFound) {
			return nil, fmt.Errorf("%w: %s", errs.ErrOrderNotFound, pe.Message)
		}
		return nil, err
	}

	var order gateway.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}
	return &order, nil
}

// FetchPayment reads a payment
func (c *Client) FetchPayment(ctx context.Context, paymentID string) (*gateway.Payment, error) {
	raw, err := c.call(ctx, http.MethodGet, "/payments/"+url.PathEscape(paymentID), nil)
	if err != nil {
		return nil, err
	}

	var payment gateway.Payment
	if err := json.Unmarshal(raw, &payment); err != nil {
		return nil, fmt.Errorf("decode payment: %w", err)
	}
	return &payment, nil
}

// VerifySignature checks hex(HMAC-SHA256(orderID|paymentID)) against the checkout signature
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	expected := Sign(c.keySecret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature))))
}

// Sign computes the checkout signature for an order/payment pair
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// call runs one request through the breaker and returns the 2xx body
func (c *Client) call(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	raw, err := c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, method, path, payload)
	})
	if err != nil {
		classified := upstream.ClassifyTransportError(err)
		c.logger.Warn("Payment gateway call failed", map[string]any{
			"provider": providerName,
			"method":   method,
			"path":     path,
			"error":    err.Error(),
		})
		return nil, classified
	}
	return raw, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.NewProviderError(providerName, resp.StatusCode, errorMessage(resp.StatusCode, raw))
	}
	return raw, nil
}

func errorMessage(status int, raw []byte) string {
	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error.Description != "" {
		return env.Error.Description
	}
	return http.StatusText(status)
}
