package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	applogger "github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/logger"
	mockcore "github.com/amirhossein-jamali/imagify/mocks/port/core"
)

func TestDatabaseLogger_Trace(t *testing.T) {
	ctx := applogger.WithRequestID(context.Background(), "req-1")
	query := func() (string, int64) { return `SELECT * FROM "users" WHERE id = $1`, 1 }

	t.Run("Errors are logged with the request ID", func(t *testing.T) {
		core := mockcore.NewMockLogger(t)
		l := NewDatabaseLogger(core, nil, "info")
		core.EXPECT().Error("SQL Error", mock.MatchedBy(func(f map[string]any) bool {
			return f["request_id"] == "req-1" && f["table"] == "users" && f["type"] == "SELECT"
		})).Once()

		l.Trace(ctx, time.Now(), query, errors.New("boom"))
	})

	t.Run("Record not found is a plain query", func(t *testing.T) {
		core := mockcore.NewMockLogger(t)
		l := NewDatabaseLogger(core, nil, "info")
		core.EXPECT().Debug("SQL Query", mock.Anything).Once()

		l.Trace(ctx, time.Now(), query, gorm.ErrRecordNotFound)
	})

	t.Run("Silent logs nothing", func(t *testing.T) {
		core := mockcore.NewMockLogger(t)
		l := NewDatabaseLogger(core, nil, "silent")

		l.Trace(ctx, time.Now(), query, errors.New("boom"))
	})

	t.Run("Slow query warns", func(t *testing.T) {
		core := mockcore.NewMockLogger(t)
		l := NewDatabaseLogger(core, nil, "warn")
		core.EXPECT().Warn("Slow SQL Query", mock.Anything).Once()

		l.Trace(ctx, time.Now().Add(-time.Second), query, nil)
	})

	assert.Equal(t, gormlogger.Silent, parseGormLevel("SILENT"))
}

func TestExtractTableName(t *testing.T) {
	assert.Equal(t, "transactions", extractTableName(`INSERT INTO "transactions" ("id") VALUES ($1)`))
	assert.Equal(t, "users", extractTableName(`UPDATE "users" SET "credit_balance"=credit_balance + $1`))
	assert.Equal(t, "", extractTableName(`BEGIN`))
}
