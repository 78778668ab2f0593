package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
)

// TransactionRepository defines essential methods to interact with purchase records
type TransactionRepository interface {
	// Create saves a new transaction
	//
	// Possible errors:
	// - ErrConstraintViolation: If transaction with the same ID already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// Update updates an existing transaction by ID
	// Used to attach the gateway order ID
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	Update(ctx context.Context, transaction *entity.Transaction) error

	// GetByID retrieves a transaction by its ID (the gateway receipt)
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)

	// GetByOrderID retrieves a transaction by its gateway order ID
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction carries the order
	// - ErrDatabaseConnection: If database connection fails
	GetByOrderID(ctx context.Context, orderID string) (*entity.Transaction, error)

	// ListByUser returns a user's transactions, newest first
	// A limit <= 0 returns all of them
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Transaction, error)

	// MarkPaid flips payment from false to true in a single conditional update
	//
	// Possible errors:
	// - ErrTransactionNotFound: If transaction with the given ID doesn't exist
	// - ErrPaymentAlreadyProcessed: If the flip already happened
	// - ErrDatabaseConnection: If database connection fails
	MarkPaid(ctx context.Context, id string, paymentID string, paidAt time.Time) error
}
