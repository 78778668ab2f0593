package persistence

import (
	"context"
)

// UnitOfWork runs a group of repository calls atomically.
// Credit mutations use it so a balance change and the transaction row that
// caused it commit or roll back together.
type UnitOfWork interface {
	// Execute commits when fn returns nil and rolls back otherwise.
	// The whole unit is retried on serialization failures and deadlocks.
	// A call made with a txCtx joins that transaction.
	Execute(ctx context.Context, fn func(txCtx context.Context) error) error

	// GetUserRepository returns a user repository bound to ctx's transaction, if any
	GetUserRepository(ctx context.Context) UserRepository

	// GetTransactionRepository returns a transaction repository bound to ctx's transaction, if any
	GetTransactionRepository(ctx context.Context) TransactionRepository
}
