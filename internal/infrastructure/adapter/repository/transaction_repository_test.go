package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/logger"
)

var transactionColumns = []string{
	"id", "user_id", "plan", "credits", "amount", "currency", "date", "payment", "order_id", "payment_id", "paid_at",
}

func transactionRow(id string, paid bool) []driver.Value {
	return []driver.Value{id, "u-1", "Advanced", int64(500), int64(50), "INR", fixedNow, paid, "order_1", "", nil}
}

func TestTransactionRepository_Create(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := NewTransactionRepository(db, logger.NewNoopLogger())
	sqlMock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "transactions"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &entity.Transaction{
		ID: "tx-1", UserID: "u-1", Plan: "Advanced", Credits: 500, Amount: 50, Currency: "INR", Date: fixedNow,
	})

	require.NoError(t, err)
}

func TestTransactionRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		repo := NewTransactionRepository(db, logger.NewNoopLogger())
		sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "transactions" WHERE id = $1`)).
			WillReturnRows(sqlmock.NewRows(transactionColumns).AddRow(transactionRow("tx-1", false)...))

		txn, err := repo.GetByID(ctx, "tx-1")

		require.NoError(t, err)
		assert.Equal(t, "Advanced", txn.Plan)
		assert.Equal(t, int64(500), txn.Credits)
		assert.False(t, txn.Payment)
		assert.Equal(t, entity.StatusOrdered, txn.Status())
	})

	t.Run("Not found", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		repo := NewTransactionRepository(db, logger.NewNoopLogger())
		sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "transactions" WHERE order_id = $1`)).
			WillReturnRows(sqlmock.NewRows(transactionColumns))

		_, err := repo.GetByOrderID(ctx, "order_9")

		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})
}

func TestTransactionRepository_ListByUser(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := NewTransactionRepository(db, logger.NewNoopLogger())
	sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "transactions" WHERE user_id = $1 ORDER BY date DESC LIMIT`)).
		WillReturnRows(sqlmock.NewRows(transactionColumns).
			AddRow(transactionRow("tx-2", true)...).
			AddRow(transactionRow("tx-1", false)...))

	txns, err := repo.ListByUser(context.Background(), "u-1", 10)

	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "tx-2", txns[0].ID)
	assert.True(t, txns[0].Payment)
}

func TestTransactionRepository_MarkPaid(t *testing.T) {
	ctx := context.Background()
	paidAt := time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC)
	flip := regexp.QuoteMeta(`UPDATE "transactions" SET "paid_at"=$1,"payment"=$2,"payment_id"=$3 WHERE id = $4 AND payment = $5`)
	exists := regexp.QuoteMeta(`SELECT count(*) FROM "transactions" WHERE id = $1`)

	t.Run("Flips an unpaid row", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		repo := NewTransactionRepository(db, logger.NewNoopLogger())
		sqlMock.ExpectExec(flip).
			WithArgs(paidAt, true, "pay_1", "tx-1", false).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkPaid(ctx, "tx-1", "pay_1", paidAt))
	})

	t.Run("Second flip loses", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		repo := NewTransactionRepository(db, logger.NewNoopLogger())
		sqlMock.ExpectExec(flip).WillReturnResult(sqlmock.NewResult(0, 0))
		sqlMock.ExpectQuery(exists).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := repo.MarkPaid(ctx, "tx-1", "pay_1", paidAt)

		assert.ErrorIs(t, err, errs.ErrPaymentAlreadyProcessed)
	})

	t.Run("Unknown transaction", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		repo := NewTransactionRepository(db, logger.NewNoopLogger())
		sqlMock.ExpectExec(flip).WillReturnResult(sqlmock.NewResult(0, 0))
		sqlMock.ExpectQuery(exists).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := repo.MarkPaid(ctx, "tx-9", "pay_1", paidAt)

		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
	})

	t.Run("Database error", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		repo := NewTransactionRepository(db, logger.NewNoopLogger())
		sqlMock.ExpectExec(flip).WillReturnError(errors.New("write: broken pipe"))

		err := repo.MarkPaid(ctx, "tx-1", "pay_1", paidAt)

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}
