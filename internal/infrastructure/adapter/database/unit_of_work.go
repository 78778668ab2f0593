package database

import (
	"context"
	"database/sql"

	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

type txContextKey struct{}

var txKey = txContextKey{}

var serializable = &sql.TxOptions{Isolation: sql.LevelSerializable}

// UnitOfWork runs credit mutations in SERIALIZABLE gorm transactions
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	retryConfig  RetryConfig
	errorMapper  *ErrorMapper
}

// NewUnitOfWork creates a UnitOfWork with the default retry policy
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) persistence.UnitOfWork {
	return NewUnitOfWorkWithRetry(db, logger, timeProvider, DefaultRetryConfig())
}

// NewUnitOfWorkWithRetry creates a UnitOfWork whose Execute uses the given retry policy
func NewUnitOfWorkWithRetry(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider, retryConfig RetryConfig) *UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		retryConfig:  retryConfig,
		errorMapper:  NewErrorMapper(),
	}
}

// Execute runs fn in one transaction, retrying the whole unit on transient conflicts
func (u *UnitOfWork) Execute(ctx context.Context, fn func(txCtx context.Context) error) error {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	attempt := 0
	return RetryOnTransientError(ctx, u.retryConfig, func() error {
		attempt++
		begin := u.timeProvider.Now()

		err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(context.WithValue(ctx, txKey, tx))
		}, serializable)

		fields := map[string]any{
			"attempt":     attempt,
			"duration_ms": u.timeProvider.Since(begin).Std().Milliseconds(),
		}
		if err != nil {
			fields["error"] = err.Error()
			u.logger.Debug("Unit of work rolled back", fields)
			return err
		}
		u.logger.Debug("Unit of work committed", fields)
		return nil
	}, u.errorMapper, u.logger)
}

// GetUserRepository returns a user repository in the current transaction
func (u *UnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	return repository.NewUserRepository(u.conn(ctx), u.timeProvider, u.logger)
}

// GetTransactionRepository returns a transaction repository in the current transaction
func (u *UnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return repository.NewTransactionRepository(u.conn(ctx), u.logger)
}

func (u *UnitOfWork) conn(ctx context.Context) *gorm.DB {
	if tx := txFrom(ctx); tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}

func txFrom(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txKey).(*gorm.DB)
	return tx
}
