package migration

import (
	"context"
	"errors"
	"fmt"
	"time"

	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// step is one versioned schema change; steps run in slice order
type step struct {
	version     string
	description string
	run         func(ctx context.Context, db *gorm.DB, logger coreport.Logger) error
}

var steps = []step{
	{"1.0.0", "Create users, transactions and user_locks", createTables},
	{"1.1.0", "Enforce non-negative credit balance", addCreditBalanceCheck},
	{"1.2.0", "Index purchase history and gateway orders", createIndexes},
}

// CurrentSchemaVersion is the version of the last migration step
var CurrentSchemaVersion = steps[len(steps)-1].version

// MigrationManager manages database migrations
type MigrationManager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// MigrateAll applies every step newer than the recorded schema version
func (m *MigrationManager) MigrateAll(ctx context.Context) error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
	})

	if err := m.db.WithContext(ctx).AutoMigrate(&model.MigrationVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	currentVersion, err := m.GetCurrentVersion(ctx)
	if err != nil {
		m.logger.Error("Failed to check current schema version", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	pending, err := pendingSteps(currentVersion)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	for _, s := range pending {
		m.logger.Info("Applying migration", map[string]any{
			"version":     s.version,
			"description": s.description,
		})

		if err := s.run(ctx, m.db.WithContext(ctx), m.logger); err != nil {
			m.logger.Error("Migration failed", map[string]any{
				"version": s.version,
				"error":   err.Error(),
			})
			return fmt.Errorf("migration %s: %w", s.version, err)
		}

		if err := m.setVersion(ctx, s.version, s.description); err != nil {
			m.logger.Error("Failed to update schema version", map[string]any{
				"error":   err.Error(),
				"version": s.version,
			})
			return err
		}
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": CurrentSchemaVersion,
	})
	return nil
}

// GetCurrentVersion returns the newest applied version, or "" on a fresh database
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var version model.MigrationVersion
	result := m.db.WithContext(ctx).Order("applied_at desc, version desc").First(&version)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}

	return version.Version, nil
}

func (m *MigrationManager) setVersion(ctx context.Context, version string, description string) error {
	appliedAt := time.Now().UTC()
	if m.timeProvider != nil {
		appliedAt = m.timeProvider.Now()
	}

	return m.db.WithContext(ctx).Create(&model.MigrationVersion{
		Version:     version,
		Description: description,
		AppliedAt:   appliedAt,
	}).Error
}

// pendingSteps returns the steps after current; an unknown version is an error
func pendingSteps(current string) ([]step, error) {
	if current == "" {
		return steps, nil
	}
	for i, s := range steps {
		if s.version == current {
			return steps[i+1:], nil
		}
	}
	return nil, fmt.Errorf("unknown schema version %q", current)
}

func createTables(_ context.Context, db *gorm.DB, _ coreport.Logger) error {
	return db.AutoMigrate(
		&model.User{},
		&model.UserLock{},
		&model.Transaction{},
	)
}
