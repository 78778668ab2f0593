package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/usecase"
	mockpersistence "github.com/amirhossein-jamali/imagify/mocks/port/persistence"
)

func TestPaymentValidator_ValidateVerify(t *testing.T) {
	v := NewPaymentValidator()

	tests := []struct {
		name    string
		userID  string
		req     usecase.VerifyRequest
		wantErr error
	}{
		{name: "Valid", userID: "u-1", req: usecase.VerifyRequest{OrderID: "order_1", PaymentID: "pay_1"}},
		{name: "No user", userID: "", req: usecase.VerifyRequest{OrderID: "order_1", PaymentID: "pay_1"}, wantErr: errs.ErrInvalidUserID},
		{name: "No order", userID: "u-1", req: usecase.VerifyRequest{PaymentID: "pay_1"}, wantErr: errs.ErrMissingDetails},
		{name: "Blank payment", userID: "u-1", req: usecase.VerifyRequest{OrderID: "order_1", PaymentID: "  "}, wantErr: errs.ErrMissingDetails},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateVerify(tt.userID, tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPaymentValidator_ValidateOrder(t *testing.T) {
	v := NewPaymentValidator()

	plan, err := v.ValidateOrder("u-1", "Business")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), plan.Credits)
	assert.Equal(t, int64(250), plan.Amount)

	_, err = v.ValidateOrder("u-1", "Enterprise")
	assert.ErrorIs(t, err, errs.ErrInvalidPlan)
}

func TestIdempotencyHandler_CheckOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Falls back to the order ID", func(t *testing.T) {
		uow := mockpersistence.NewMockUnitOfWork(t)
		txRepo := mockpersistence.NewMockTransactionRepository(t)
		uow.EXPECT().GetTransactionRepository(ctx).Return(txRepo).Once()
		txRepo.EXPECT().GetByID(ctx, "").Return(nil, errs.ErrTransactionNotFound).Once()
		paid := pendingTxn()
		paid.Payment = true
		txRepo.EXPECT().GetByOrderID(ctx, "order_1").Return(paid, nil).Once()

		txn, processed, err := NewIdempotencyHandler(uow).CheckOrder(ctx, &gateway.Order{ID: "order_1"})

		require.NoError(t, err)
		assert.True(t, processed)
		assert.Equal(t, "tx-1", txn.ID)
	})

	t.Run("Database error is wrapped", func(t *testing.T) {
		uow := mockpersistence.NewMockUnitOfWork(t)
		txRepo := mockpersistence.NewMockTransactionRepository(t)
		uow.EXPECT().GetTransactionRepository(ctx).Return(txRepo).Once()
		txRepo.EXPECT().GetByID(ctx, "tx-1").Return(nil, errs.ErrDatabaseConnection).Once()

		_, _, err := NewIdempotencyHandler(uow).CheckOrder(ctx, &gateway.Order{ID: "order_1", Receipt: "tx-1"})

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		assert.Contains(t, err.Error(), "order_1")
	})
}
