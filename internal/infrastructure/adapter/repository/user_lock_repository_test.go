package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/logger"
)

func TestUserLockRepository_AcquireLock(t *testing.T) {
	ctx := context.Background()
	upsert := regexp.QuoteMeta(`INSERT INTO user_locks`)

	t.Run("Free lock is taken", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		repo := NewUserLockRepository(db, newFixedClock(t), logger.NewNoopLogger())
		sqlMock.ExpectExec(upsert).
			WithArgs("u-1", fixedNow, fixedNow.Add(30*time.Second), fixedNow, fixedNow, fixedNow).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.AcquireLock(ctx, "u-1", 30*time.Second))
	})

	t.Run("Live lock leaves no row affected", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		repo := NewUserLockRepository(db, newFixedClock(t), logger.NewNoopLogger())
		sqlMock.ExpectExec(upsert).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.AcquireLock(ctx, "u-1", 30*time.Second)

		assert.ErrorIs(t, err, errs.ErrUserLocked)
	})

	t.Run("Database down", func(t *testing.T) {
		db, sqlMock := newMockDB(t)
		repo := NewUserLockRepository(db, newFixedClock(t), logger.NewNoopLogger())
		sqlMock.ExpectExec(upsert).WillReturnError(errors.New("connection reset by peer"))

		err := repo.AcquireLock(ctx, "u-1", 30*time.Second)

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}

func TestUserLockRepository_ReleaseLock(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := NewUserLockRepository(db, newFixedClock(t), logger.NewNoopLogger())
	sqlMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "user_locks" WHERE user_id = $1`)).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.ReleaseLock(context.Background(), "u-1"))
}

func TestUserLockRepository_CleanupExpiredLocks(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := NewUserLockRepository(db, newFixedClock(t), logger.NewNoopLogger())
	sqlMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "user_locks" WHERE expires_at < $1`)).
		WithArgs(fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := repo.CleanupExpiredLocks(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}

func TestErrorClassifier(t *testing.T) {
	c := NewErrorClassifier()

	assert.Equal(t, DuplicateKeyError, c.Classify(errors.New(`duplicate key value violates unique constraint (SQLSTATE 23505)`)))
	assert.Equal(t, LockError, c.Classify(errors.New("deadlock detected (SQLSTATE 40P01)")))
	assert.Equal(t, LockError, c.Classify(errors.New("could not serialize access due to read/write dependencies")))
	assert.Equal(t, TransientError, c.Classify(errors.New("unexpected EOF")))
	assert.Equal(t, ConstraintError, c.Classify(errors.New(`new row violates check constraint "chk_users_credit_balance"`)))
	assert.Equal(t, ErrorType(""), c.Classify(nil))

	assert.Equal(t, DuplicateKeyError, c.Classify(&pgconn.PgError{Code: "23505"}))
	assert.Equal(t, LockError, c.Classify(&pgconn.PgError{Code: "55P03"}))
	assert.Equal(t, ConstraintError, c.Classify(&pgconn.PgError{Code: "23514"}))
}
