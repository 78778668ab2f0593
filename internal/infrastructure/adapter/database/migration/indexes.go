package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"gorm.io/gorm"
)

type indexDef struct {
	name string
	sql  string
}

var indexes = []indexDef{
	{
		// purchase history, newest first
		name: "idx_transactions_user_date",
		sql:  `CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions (user_id, date DESC)`,
	},
	{
		// a gateway order belongs to exactly one purchase
		name: "idx_transactions_order_id",
		sql:  `CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_order_id ON transactions (order_id) WHERE order_id <> ''`,
	},
	{
		name: "idx_transactions_unpaid",
		sql:  `CREATE INDEX IF NOT EXISTS idx_transactions_unpaid ON transactions (user_id) WHERE payment = false`,
	},
	{
		name: "idx_user_locks_expires_at",
		sql:  `CREATE INDEX IF NOT EXISTS idx_user_locks_expires_at ON user_locks (expires_at)`,
	},
}

// createIndexes adds the query indexes and the storage tweaks for hot rows
func createIndexes(_ context.Context, db *gorm.DB, logger coreport.Logger) error {
	for _, idx := range indexes {
		if err := db.Exec(idx.sql).Error; err != nil {
			logger.Error("Failed to create index", map[string]any{
				"index": idx.name,
				"error": err.Error(),
			})
			return err
		}
	}

	// credit_balance is rewritten on every generation; leave room for HOT updates
	if err := db.Exec(`ALTER TABLE users SET (fillfactor = 90)`).Error; err != nil {
		logger.Warn("Failed to set fillfactor for users table", map[string]any{
			"error": err.Error(),
		})
	}

	logger.Info("Indexes created", map[string]any{"count": len(indexes)})
	return nil
}
