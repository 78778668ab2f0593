package razorpay

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/logger"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, KeyID: "rzp_test_key", KeySecret: "s3cret"}, logger.NewNoopLogger())
}

func TestClient_CreateOrder(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "s3cret", pass)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(5000), body["amount"])
		assert.Equal(t, "INR", body["currency"])
		assert.Equal(t, "tx-1", body["receipt"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"order_1","entity":"order","amount":5000,"currency":"INR","receipt":"tx-1","status":"created"}`)
	})

	order, err := c.CreateOrder(context.Background(), gateway.OrderRequest{Amount: 5000, Currency: "INR", Receipt: "tx-1"})

	require.NoError(t, err)
	assert.Equal(t, "order_1", order.ID)
	assert.Equal(t, "created", order.Status)
	assert.Equal(t, int64(5000), order.Amount)
}

func TestClient_CreateOrder_GatewayError(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":{"code":"BAD_REQUEST_ERROR","description":"Authentication failed"}}`)
	})

	_, err := c.CreateOrder(context.Background(), gateway.OrderRequest{Amount: 100, Currency: "INR"})

	pe, ok := errs.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, pe.StatusCode)
	assert.Equal(t, "Authentication failed", pe.Message)
}

func TestClient_FetchOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/orders/order_1", r.URL.Path)
			_, _ = io.WriteString(w, `{"id":"order_1","receipt":"tx-1","status":"paid","amount_paid":5000}`)
		})

		order, err := c.FetchOrder(ctx, "order_1")

		require.NoError(t, err)
		assert.Equal(t, "tx-1", order.Receipt)
		assert.Equal(t, int64(5000), order.AmountPaid)
	})

	t.Run("Unknown order", func(t *testing.T) {
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":{"code":"BAD_REQUEST_ERROR","description":"The id provided does not exist"}}`)
		})

		_, err := c.FetchOrder(ctx, "order_x")

		assert.ErrorIs(t, err, errs.ErrOrderNotFound)
	})

	t.Run("Server error stays a provider error", func(t *testing.T) {
		c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := c.FetchOrder(ctx, "order_1")

		pe, ok := errs.AsProviderError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusServiceUnavailable, pe.StatusCode)
		assert.NotErrorIs(t, err, errs.ErrOrderNotFound)
	})
}

func TestClient_FetchPayment(t *testing.T) {
	c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/pay_1", r.URL.Path)
		_, _ = io.WriteString(w, `{"id":"pay_1","order_id":"order_1","status":"captured","captured":true,"amount":5000}`)
	})

	payment, err := c.FetchPayment(context.Background(), "pay_1")

	require.NoError(t, err)
	assert.Equal(t, "order_1", payment.OrderID)
	assert.True(t, payment.IsSuccessful())
}

func TestClient_VerifySignature(t *testing.T) {
	c := NewClient(Config{KeyID: "rzp_test_key", KeySecret: "s3cret"}, logger.NewNoopLogger())
	valid := Sign("s3cret", "order_1", "pay_1")

	assert.True(t, c.VerifySignature("order_1", "pay_1", valid))
	assert.False(t, c.VerifySignature("order_1", "pay_2", valid))
	assert.False(t, c.VerifySignature("order_1", "pay_1", Sign("other", "order_1", "pay_1")))
	assert.False(t, c.VerifySignature("order_1", "pay_1", ""))
	assert.Equal(t, "rzp_test_key", c.KeyID())
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := NewClient(Config{BaseURL: url, KeyID: "k", KeySecret: "s"}, logger.NewNoopLogger())

	_, err := c.FetchPayment(context.Background(), "pay_1")

	assert.ErrorIs(t, err, errs.ErrProviderUnavailable)
}
