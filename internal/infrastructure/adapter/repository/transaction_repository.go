package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TransactionRepository implements TransactionRepository interface using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a transaction entity to a database model
func (r *TransactionRepository) entityToModel(t *entity.Transaction) model.Transaction {
	return model.Transaction{
		ID:        t.ID,
		UserID:    t.UserID,
		Plan:      t.Plan,
		Credits:   t.Credits,
		Amount:    t.Amount,
		Currency:  t.Currency,
		Date:      t.Date,
		Payment:   t.Payment,
		OrderID:   t.OrderID,
		PaymentID: t.PaymentID,
		PaidAt:    t.PaidAt,
	}
}

// modelToEntity converts a transaction model to an entity
func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:        m.ID,
		UserID:    m.UserID,
		Plan:      m.Plan,
		Credits:   m.Credits,
		Amount:    m.Amount,
		Currency:  m.Currency,
		Date:      m.Date,
		Payment:   m.Payment,
		OrderID:   m.OrderID,
		PaymentID: m.PaymentID,
		PaidAt:    m.PaidAt,
	}
}

func (r *TransactionRepository) handleDatabaseError(operation string, err error, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrTransactionNotFound
	}

	r.logger.Error("Database error when "+operation, map[string]any{
		"transaction_id": id,
		"error":          err.Error(),
	})
	return wrapDatabaseError(r.errorClassifier, err)
}

// Create saves a new transaction
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	m := r.entityToModel(transaction)

	if err := r.db.WithContext(ctx).Omit("User").Create(&m).Error; err != nil {
		return r.handleDatabaseError("creating transaction", err, transaction.ID)
	}

	r.logger.Debug("Transaction created", map[string]any{
		"transaction_id": transaction.ID,
		"user_id":        transaction.UserID,
		"plan":           transaction.Plan,
	})
	return nil
}

// Update writes the gateway order onto a pending transaction
func (r *TransactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", transaction.ID).
		Updates(map[string]interface{}{
			"order_id": transaction.OrderID,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating transaction", result.Error, transaction.ID)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("Transaction not found during update", map[string]any{
			"transaction_id": transaction.ID,
		})
		return errs.ErrTransactionNotFound
	}

	return nil
}

// GetByID retrieves a transaction by its ID
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var m model.Transaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, r.handleDatabaseError("getting transaction", err, id)
	}

	return r.modelToEntity(&m), nil
}

// GetByOrderID retrieves a transaction by its gateway order ID
func (r *TransactionRepository) GetByOrderID(ctx context.Context, orderID string) (*entity.Transaction, error) {
	var m model.Transaction
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&m).Error; err != nil {
		return nil, r.handleDatabaseError("getting transaction by order", err, orderID)
	}

	return r.modelToEntity(&m), nil
}

// ListByUser returns a user's transactions, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []model.Transaction
	if err := query.Find(&rows).Error; err != nil {
		return nil, r.handleDatabaseError("listing transactions", err, "")
	}

	out := make([]*entity.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, r.modelToEntity(&rows[i]))
	}
	return out, nil
}

// MarkPaid flips payment from false to true; only one caller can win the flip
func (r *TransactionRepository) MarkPaid(ctx context.Context, id string, paymentID string, paidAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ? AND payment = ?", id, false).
		Updates(map[string]interface{}{
			"payment":    true,
			"payment_id": paymentID,
			"paid_at":    paidAt,
		})

	if result.Error != nil {
		return r.handleDatabaseError("marking transaction paid", result.Error, id)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Transaction{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return r.handleDatabaseError("checking transaction", err, id)
		}
		if count == 0 {
			return errs.ErrTransactionNotFound
		}

		r.logger.Warn("Transaction already settled", map[string]any{
			"transaction_id": id,
			"payment_id":     paymentID,
		})
		return errs.ErrPaymentAlreadyProcessed
	}

	return nil
}
