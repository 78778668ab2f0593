package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/imagify/internal/domain/error"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/logger"
	mockcore "github.com/amirhossein-jamali/imagify/mocks/port/core"
	mockusecase "github.com/amirhossein-jamali/imagify/mocks/port/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// authedAs stands in for the auth middleware
func authedAs(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func perform(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func newUser() *entity.User {
	return entity.HydrateUser("u-1", "Ada", "ada@example.com", "$2a$hash", 5, testTime, testTime)
}

func TestUserHandler_Register(t *testing.T) {
	setup := func(t *testing.T) (*gin.Engine, *mockusecase.MockUserUseCase) {
		uc := mockusecase.NewMockUserUseCase(t)
		r := gin.New()
		r.POST("/register", NewUserHandler(uc, logger.NewNoopLogger()).Register)
		return r, uc
	}

	t.Run("Created without the password hash", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().Register(mock.Anything, usecase.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "pw"}).
			Return(&usecase.AuthResult{Token: "tok", User: newUser()}, nil).Once()

		rec, body := perform(t, r, http.MethodPost, "/register", map[string]string{"name": "Ada", "email": "ada@example.com", "password": "pw"})

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "tok", body["token"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "u-1", user["_id"])
		assert.Equal(t, float64(5), user["creditBalance"])
		assert.NotContains(t, rec.Body.String(), "$2a$hash")
	})

	t.Run("Missing details", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, domainerr.ErrMissingDetails).Once()

		rec, body := perform(t, r, http.MethodPost, "/register", map[string]string{"name": "Ada"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, MsgMissingDetails, body["message"])
		assert.Equal(t, float64(domainerr.CodeMissingDetails), body["code"])
	})

	t.Run("Email taken", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, domainerr.ErrEmailAlreadyRegistered).Once()

		rec, body := perform(t, r, http.MethodPost, "/register", map[string]string{"name": "Ada", "email": "a@b.c", "password": "pw"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, MsgEmailRegistered, body["message"])
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		r, _ := setup(t)

		rec, body := perform(t, r, http.MethodPost, "/register", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, MsgInvalidRequest, body["message"])
	})
}

func TestUserHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"Unknown email", domainerr.ErrUserNotFound, http.StatusNotFound, MsgUserDoesNotExist},
		{"Wrong password", domainerr.ErrInvalidCredentials, http.StatusUnauthorized, MsgInvalidCredentials},
		{"Database down", domainerr.ErrDatabaseConnection, http.StatusInternalServerError, MsgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := mockusecase.NewMockUserUseCase(t)
			r := gin.New()
			r.POST("/login", NewUserHandler(uc, logger.NewNoopLogger()).Login)
			uc.EXPECT().Login(mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec, body := perform(t, r, http.MethodPost, "/login", map[string]string{"email": "a@b.c", "password": "pw"})

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, body["message"])
		})
	}

	t.Run("Success", func(t *testing.T) {
		uc := mockusecase.NewMockUserUseCase(t)
		r := gin.New()
		r.POST("/login", NewUserHandler(uc, logger.NewNoopLogger()).Login)
		uc.EXPECT().Login(mock.Anything, usecase.LoginRequest{Email: "ada@example.com", Password: "pw"}).
			Return(&usecase.AuthResult{Token: "tok", User: newUser()}, nil).Once()

		rec, body := perform(t, r, http.MethodPost, "/login", map[string]string{"email": "ada@example.com", "password": "pw"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "tok", body["token"])
	})
}

func TestUserHandler_Credits(t *testing.T) {
	t.Run("Balance and name", func(t *testing.T) {
		uc := mockusecase.NewMockUserUseCase(t)
		r := gin.New()
		h := NewUserHandler(uc, logger.NewNoopLogger())
		r.GET("/credits", authedAs("u-1"), h.Credits)
		uc.EXPECT().GetCredits(mock.Anything, "u-1").Return(newUser(), nil).Once()

		rec, body := perform(t, r, http.MethodGet, "/credits", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(5), body["credits"])
		assert.Equal(t, map[string]any{"name": "Ada"}, body["user"])
	})

	t.Run("User gone", func(t *testing.T) {
		uc := mockusecase.NewMockUserUseCase(t)
		r := gin.New()
		r.POST("/credits", authedAs("u-1"), NewUserHandler(uc, logger.NewNoopLogger()).Credits)
		uc.EXPECT().GetCredits(mock.Anything, "u-1").Return(nil, domainerr.ErrUserNotFound).Once()

		rec, body := perform(t, r, http.MethodPost, "/credits", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, MsgUserNotFound, body["message"])
	})
}

func TestPaymentHandler_CreateOrder(t *testing.T) {
	setup := func(t *testing.T) (*gin.Engine, *mockusecase.MockPaymentUseCase) {
		uc := mockusecase.NewMockPaymentUseCase(t)
		r := gin.New()
		r.POST("/pay-razor", authedAs("u-1"), NewPaymentHandler(uc, logger.NewNoopLogger()).CreateOrder)
		return r, uc
	}

	t.Run("Order created", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().CreateOrder(mock.Anything, "u-1", "Basic").Return(&usecase.OrderResult{
			Success:       true,
			Order:         &gateway.Order{ID: "order_1", Amount: 1000, Currency: "INR", Receipt: "tx-1"},
			TransactionID: "tx-1",
			KeyID:         "rzp_test_key",
			StatusCode:    http.StatusOK,
		}, nil).Once()

		rec, body := perform(t, r, http.MethodPost, "/pay-razor", map[string]string{"planId": "Basic"})

		assert.Equal(t, http.StatusOK, rec.Code)
		order := body["order"].(map[string]any)
		assert.Equal(t, "order_1", order["id"])
		assert.Equal(t, float64(1000), order["amount"])
		assert.Equal(t, "rzp_test_key", body["key"])
	})

	t.Run("Invalid plan", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().CreateOrder(mock.Anything, "u-1", "Gold").
			Return(&usecase.OrderResult{Message: "Invalid Plan", StatusCode: http.StatusBadRequest}, domainerr.ErrInvalidPlan).Once()

		rec, body := perform(t, r, http.MethodPost, "/pay-razor", map[string]string{"planId": "Gold"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid Plan", body["message"])
		assert.Equal(t, float64(domainerr.CodeInvalidPlan), body["code"])
	})
}

func TestPaymentHandler_VerifyPayment(t *testing.T) {
	setup := func(t *testing.T) (*gin.Engine, *mockusecase.MockPaymentUseCase) {
		uc := mockusecase.NewMockPaymentUseCase(t)
		r := gin.New()
		r.POST("/verify-razor", authedAs("u-1"), NewPaymentHandler(uc, logger.NewNoopLogger()).VerifyPayment)
		return r, uc
	}
	payload := map[string]string{
		"razorpay_order_id":   "order_1",
		"razorpay_payment_id": "pay_1",
		"razorpay_signature":  "sig",
	}

	t.Run("Credits added", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().VerifyPayment(mock.Anything, "u-1", usecase.VerifyRequest{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"}).
			Return(&usecase.VerifyResult{Success: true, Message: "Credits Added", CreditBalance: 105, StatusCode: http.StatusOK}, nil).Once()

		rec, body := perform(t, r, http.MethodPost, "/verify-razor", payload)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Credits Added", body["message"])
		assert.Equal(t, float64(105), body["creditBalance"])
	})

	t.Run("Replay", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().VerifyPayment(mock.Anything, "u-1", mock.Anything).
			Return(&usecase.VerifyResult{Message: "Payment already processed", StatusCode: http.StatusBadRequest}, domainerr.ErrPaymentAlreadyProcessed).Once()

		rec, body := perform(t, r, http.MethodPost, "/verify-razor", payload)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Payment already processed", body["message"])
		assert.Equal(t, false, body["success"])
	})

	t.Run("Someone else's order", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().VerifyPayment(mock.Anything, "u-1", mock.Anything).
			Return(&usecase.VerifyResult{Message: "Unauthorized access", StatusCode: http.StatusForbidden}, domainerr.ErrUnauthorizedAccess).Once()

		rec, _ := perform(t, r, http.MethodPost, "/verify-razor", payload)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestPaymentHandler_TransactionsAndPlans(t *testing.T) {
	uc := mockusecase.NewMockPaymentUseCase(t)
	h := NewPaymentHandler(uc, logger.NewNoopLogger())
	r := gin.New()
	r.GET("/transactions", authedAs("u-1"), h.Transactions)
	r.GET("/plans", h.Plans)

	paidAt := testTime.Add(time.Minute)
	uc.EXPECT().ListTransactions(mock.Anything, "u-1").Return([]*entity.Transaction{
		{ID: "tx-2", UserID: "u-1", Plan: "Advanced", Credits: 500, Amount: 50, Currency: "INR", Date: testTime, Payment: true, OrderID: "order_2", PaidAt: &paidAt},
		{ID: "tx-1", UserID: "u-1", Plan: "Basic", Credits: 100, Amount: 10, Currency: "INR", Date: testTime},
	}, nil).Once()
	uc.EXPECT().Plans().Return(entity.Plans()).Once()

	rec, body := perform(t, r, http.MethodGet, "/transactions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	txns := body["transactions"].([]any)
	require.Len(t, txns, 2)
	first := txns[0].(map[string]any)
	assert.Equal(t, "tx-2", first["_id"])
	assert.Equal(t, true, first["payment"])
	assert.Equal(t, float64(testTime.UnixMilli()), first["date"])

	rec, body = perform(t, r, http.MethodGet, "/plans", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["plans"], 3)
}

func TestImageHandler_GenerateImage(t *testing.T) {
	setup := func(t *testing.T) (*gin.Engine, *mockusecase.MockImageUseCase) {
		uc := mockusecase.NewMockImageUseCase(t)
		r := gin.New()
		r.POST("/generate-image", authedAs("u-1"), NewImageHandler(uc, logger.NewNoopLogger()).GenerateImage)
		return r, uc
	}

	t.Run("Image returned", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().GenerateImage(mock.Anything, "u-1", "a cat").Return(&usecase.ImageResult{
			Success:     true,
			Message:     "Image generated successfully",
			ResultImage: "data:image/png;base64,AAAA",
			Metadata:    &usecase.ImageMetadata{ImageSize: 12, Format: "PNG", CreditsUsed: 1, RemainingCredits: 4},
			StatusCode:  http.StatusOK,
		}, nil).Once()

		rec, body := perform(t, r, http.MethodPost, "/generate-image", map[string]string{"prompt": "a cat"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "data:image/png;base64,AAAA", body["resultImage"])
		meta := body["metadata"].(map[string]any)
		assert.Equal(t, float64(4), meta["remainingCredits"])
		assert.Equal(t, "PNG", meta["format"])
	})

	t.Run("No credit balance keeps a zero balance in the body", func(t *testing.T) {
		r, uc := setup(t)
		zero := int64(0)
		uc.EXPECT().GenerateImage(mock.Anything, "u-1", "a cat").Return(&usecase.ImageResult{
			Message:       "No credit balance",
			CreditBalance: &zero,
			StatusCode:    http.StatusBadRequest,
		}, domainerr.ErrInsufficientCredits).Once()

		rec, body := perform(t, r, http.MethodPost, "/generate-image", map[string]string{"prompt": "a cat"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, float64(0), body["creditBalance"])
		assert.Equal(t, float64(domainerr.CodeInsufficientCredits), body["code"])
	})

	t.Run("Upstream rate limit", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().GenerateImage(mock.Anything, "u-1", "a cat").Return(&usecase.ImageResult{
			Message:    "Rate limit exceeded. Please wait a moment before trying again.",
			RetryAfter: 60,
			StatusCode: http.StatusTooManyRequests,
		}, domainerr.NewProviderError("clipdrop", 429, "slow down")).Once()

		rec, body := perform(t, r, http.MethodPost, "/generate-image", map[string]string{"prompt": "a cat"})

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
		assert.Equal(t, float64(60), body["retryAfter"])
	})

	t.Run("Prompt rejected with suggestions", func(t *testing.T) {
		r, uc := setup(t)
		uc.EXPECT().GenerateImage(mock.Anything, "u-1", "a cat").Return(&usecase.ImageResult{
			Message:        "Unable to generate image from this prompt",
			Suggestions:    []string{"Try a different prompt"},
			OriginalPrompt: "a cat",
			StatusCode:     http.StatusUnprocessableEntity,
		}, domainerr.NewProviderError("clipdrop", 422, "blocked")).Once()

		rec, body := perform(t, r, http.MethodPost, "/generate-image", map[string]string{"prompt": "a cat"})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "a cat", body["originalPrompt"])
		assert.Len(t, body["suggestions"], 1)
	})
}

func TestImageHandler_EnhancePrompt(t *testing.T) {
	uc := mockusecase.NewMockImageUseCase(t)
	r := gin.New()
	r.POST("/enhance-prompt", authedAs("u-1"), NewImageHandler(uc, logger.NewNoopLogger()).EnhancePrompt)

	uc.EXPECT().EnhancePrompt("a cat").Return(&usecase.PromptResult{
		Original:   "a cat",
		Enhanced:   "High quality, detailed, photorealistic A cat, sharp focus, well lit, professional",
		Variations: []string{"v1", "v2", "v3", "v4"},
	}, nil).Once()
	uc.EXPECT().EnhancePrompt("").Return(nil, domainerr.ErrPromptRequired).Once()

	rec, body := perform(t, r, http.MethodPost, "/enhance-prompt", map[string]string{"prompt": "a cat"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["variations"], 4)

	rec, body = perform(t, r, http.MethodPost, "/enhance-prompt", map[string]string{"prompt": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Prompt is required", body["message"])
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestSystemHandler(t *testing.T) {
	clock := mockcore.NewMockTimeProvider(t)
	clock.EXPECT().Now().Return(testTime).Maybe()

	healthy := true
	h := NewSystemHandler(pingFunc(func(context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("connection refused")
	}), clock, logger.NewNoopLogger())

	r := gin.New()
	r.GET("/", h.Status)
	r.GET("/health", h.Health)

	rec, body := perform(t, r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "online", body["status"])
	assert.Equal(t, testTime.Format(time.RFC3339Nano), body["timestamp"])

	rec, _ = perform(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	healthy = false
	rec, body = perform(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, float64(domainerr.CodeDatabaseUnavailable), body["code"])
}
