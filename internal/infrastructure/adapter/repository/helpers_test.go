package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	mockcore "github.com/amirhossein-jamali/imagify/mocks/port/core"
)

var fixedNow = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, sqlMock.ExpectationsWereMet())
	})
	return db, sqlMock
}

func newFixedClock(t *testing.T) *mockcore.MockTimeProvider {
	clock := mockcore.NewMockTimeProvider(t)
	clock.EXPECT().Now().Return(fixedNow).Maybe()
	return clock
}

var userColumns = []string{"id", "name", "email", "password_hash", "credit_balance", "created_at", "updated_at"}

func userRow(id string, credits int64) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).
		AddRow(id, "Ada", "ada@example.com", "hash", credits, fixedNow, fixedNow)
}
