package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"gorm.io/gorm"
)

const creditBalanceConstraint = "chk_users_credit_balance"

// addCreditBalanceCheck backs the conditional decrement with a table constraint
func addCreditBalanceCheck(_ context.Context, db *gorm.DB, logger coreport.Logger) error {
	var count int64
	err := db.Raw(`
		SELECT count(*)
		FROM pg_constraint
		WHERE conname = ?`, creditBalanceConstraint).Scan(&count).Error
	if err != nil {
		logger.Error("Failed to check constraint existence", map[string]any{"error": err.Error()})
		return err
	}

	if count > 0 {
		logger.Info("Credit balance constraint already present", map[string]any{
			"constraint": creditBalanceConstraint,
		})
		return nil
	}

	if err := db.Exec(`ALTER TABLE users ADD CONSTRAINT ` + creditBalanceConstraint + ` CHECK (credit_balance >= 0)`).Error; err != nil {
		logger.Error("Failed to add credit balance constraint", map[string]any{"error": err.Error()})
		return err
	}

	logger.Info("Added credit balance constraint", map[string]any{
		"constraint": creditBalanceConstraint,
	})
	return nil
}
