package credit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/usecase"
)

const (
	lockAttempts = 3
	lockBackoff  = 50 * coreport.Millisecond
)

// Service is the credit ledger; every balance change goes through it
type Service struct {
	manager      *Manager
	uow          persistence.UnitOfWork
	userLockRepo persistence.UserLockRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics
	lockTimeout  time.Duration
}

// NewService creates a new credit service
func NewService(
	manager *Manager,
	uow persistence.UnitOfWork,
	userLockRepo persistence.UserLockRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
	lockTimeout time.Duration,
) *Service {
	if lockTimeout <= 0 {
		lockTimeout = 30 * time.Second
	}

	return &Service{
		manager:      manager,
		uow:          uow,
		userLockRepo: userLockRepo,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
		lockTimeout:  lockTimeout,
	}
}

var _ usecase.CreditUseCase = (*Service)(nil)

// Consume takes n credits from the user with a conditional decrement
func (s *Service) Consume(ctx context.Context, userID string, n int64) (*entity.User, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if n <= 0 {
		return nil, errs.ErrNegativeCredits
	}

	user, err := s.manager.Enqueue(ctx, userID, func(ctx context.Context) (*entity.User, error) {
		return s.withUserLock(ctx, userID, func(ctx context.Context) (*entity.User, error) {
			var updated *entity.User
			err := s.uow.Execute(ctx, func(txCtx context.Context) error {
				u, err := s.uow.GetUserRepository(txCtx).AdjustCredits(txCtx, userID, -n)
				if err != nil {
					return err
				}
				updated = u
				return nil
			})
			return updated, err
		})
	})
	if err != nil {
		if !errs.IsInsufficientCreditsError(err) {
			s.logger.Error("Failed to consume credits", map[string]any{
				"user_id": userID,
				"credits": n,
				"error":   err.Error(),
			})
		}
		return nil, err
	}

	s.metrics.CreditsConsumed(n)
	s.logger.Info("Credits consumed", map[string]any{
		"user_id":        userID,
		"credits":        n,
		"credit_balance": user.CreditBalance(),
	})

	return user, nil
}

// Settle flips the purchase to paid and grants its credits in one database transaction
func (s *Service) Settle(ctx context.Context, userID string, req usecase.SettleRequest) (*entity.User, error) {
	if userID == "" {
		return nil, errs.ErrInvalidUserID
	}
	if req.TransactionID == "" {
		return nil, errs.ErrInvalidRequest
	}

	var settled entity.Transaction
	user, err := s.manager.Enqueue(ctx, userID, func(ctx context.Context) (*entity.User, error) {
		return s.withUserLock(ctx, userID, func(ctx context.Context) (*entity.User, error) {
			var updated *entity.User
			err := s.uow.Execute(ctx, func(txCtx context.Context) error {
				txRepo := s.uow.GetTransactionRepository(txCtx)

				txn, err := txRepo.GetByID(txCtx, req.TransactionID)
				if err != nil {
					return err
				}
				if !txn.BelongsTo(userID) {
					return errs.ErrUnauthorizedAccess
				}
				if txn.Payment {
					return errs.ErrPaymentAlreadyProcessed
				}

				// MarkPaid only flips an unpaid row, so concurrent settles lose here
				if err := txRepo.MarkPaid(txCtx, txn.ID, req.PaymentID, s.timeProvider.Now()); err != nil {
					return err
				}

				u, err := s.uow.GetUserRepository(txCtx).AdjustCredits(txCtx, userID, txn.Credits)
				if err != nil {
					return err
				}

				settled = *txn
				updated = u
				return nil
			})
			return updated, err
		})
	})
	if err != nil {
		return nil, errs.NewPaymentError("", req.PaymentID, req.TransactionID, userID, "settlement failed", err)
	}

	s.metrics.PaymentSettled(settled.Plan, settled.Credits)
	s.logger.Info("Purchase settled", map[string]any{
		"user_id":        userID,
		"transaction_id": settled.ID,
		"payment_id":     req.PaymentID,
		"plan":           settled.Plan,
		"credits":        settled.Credits,
		"credit_balance": user.CreditBalance(),
	})

	return user, nil
}

// withUserLock holds the cross-process user lock around op
func (s *Service) withUserLock(
	ctx context.Context,
	userID string,
	op func(ctx context.Context) (*entity.User, error),
) (*entity.User, error) {
	if err := s.acquireLock(ctx, userID); err != nil {
		return nil, err
	}

	defer func() {
		// release even when the caller has gone away
		releaseCtx, cancel := s.timeProvider.WithTimeout(context.WithoutCancel(ctx), 5*coreport.Second)
		defer cancel()
		if err := s.userLockRepo.ReleaseLock(releaseCtx, userID); err != nil {
			s.logger.Warn("Failed to release user lock", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}()

	return op(ctx)
}

func (s *Service) acquireLock(ctx context.Context, userID string) error {
	var err error
	for attempt := 1; attempt <= lockAttempts; attempt++ {
		err = s.userLockRepo.AcquireLock(ctx, userID, s.lockTimeout)
		if err == nil {
			return nil
		}
		if !errors.Is(err, errs.ErrUserLocked) {
			return fmt.Errorf("failed to acquire user lock: %w", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt == lockAttempts {
			break
		}

		s.logger.Debug("User lock held elsewhere, waiting", map[string]any{
			"user_id": userID,
			"attempt": attempt,
		})
		s.timeProvider.Sleep(lockBackoff * coreport.Duration(attempt))
	}
	return err
}

// Shutdown drains the per-user queues
func (s *Service) Shutdown() {
	s.manager.Shutdown()
}
