package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/imagify/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	basic, err := FindPlan("Basic")
	require.NoError(t, err)

	t.Run("Valid transaction creation", func(t *testing.T) {
		tx, err := NewTransaction("tx-1", "u-1", basic, " inr ", mockTime)

		require.NoError(t, err)
		assert.Equal(t, "tx-1", tx.ID)
		assert.Equal(t, "u-1", tx.UserID)
		assert.Equal(t, "Basic", tx.Plan)
		assert.Equal(t, int64(100), tx.Credits)
		assert.Equal(t, int64(10), tx.Amount)
		assert.Equal(t, "INR", tx.Currency)
		assert.Equal(t, fixedTime, tx.Date)
		assert.False(t, tx.Payment)
		assert.Nil(t, tx.PaidAt)
		assert.Equal(t, StatusPending, tx.Status())
	})

	t.Run("With order option", func(t *testing.T) {
		tx, err := NewTransaction("tx-1", "u-1", basic, "INR", mockTime, WithOrderID("order_1"))

		require.NoError(t, err)
		assert.Equal(t, "order_1", tx.OrderID)
		assert.Equal(t, StatusOrdered, tx.Status())
	})

	t.Run("Invalid input", func(t *testing.T) {
		testCases := []struct {
			name     string
			id       string
			userID   string
			plan     Plan
			expected error
		}{
			{"empty id", "", "u-1", basic, errs.ErrInvalidRequest},
			{"empty user", "tx-1", "", basic, errs.ErrInvalidUserID},
			{"empty plan", "tx-1", "u-1", Plan{}, errs.ErrInvalidPlan},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				tx, err := NewTransaction(tc.id, tc.userID, tc.plan, "INR", mockTime)
				assert.ErrorIs(t, err, tc.expected)
				assert.Nil(t, tx)
			})
		}
	})
}

func TestTransactionMarkAsPaid(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	paidAt := createdAt.Add(5 * time.Minute)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(createdAt).Once()
	mockTime.EXPECT().Now().Return(paidAt).Once()

	plan, err := FindPlan("Advanced")
	require.NoError(t, err)
	tx, err := NewTransaction("tx-1", "u-1", plan, "INR", mockTime)
	require.NoError(t, err)

	require.NoError(t, tx.MarkAsPaid("pay_1", mockTime))
	assert.True(t, tx.Payment)
	assert.Equal(t, "pay_1", tx.PaymentID)
	require.NotNil(t, tx.PaidAt)
	assert.Equal(t, paidAt, *tx.PaidAt)
	assert.Equal(t, StatusCompleted, tx.Status())

	// second settlement is rejected without touching the record
	err = tx.MarkAsPaid("pay_2", mockTime)
	assert.ErrorIs(t, err, errs.ErrPaymentAlreadyProcessed)
	assert.Equal(t, "pay_1", tx.PaymentID)

	assert.True(t, tx.BelongsTo("u-1"))
	assert.False(t, tx.BelongsTo("u-2"))
}
