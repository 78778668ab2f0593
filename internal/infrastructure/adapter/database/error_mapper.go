package database

import (
	"errors"
	"fmt"
	"strings"

	domainErr "github.com/amirhossein-jamali/imagify/internal/domain/error"
	"gorm.io/gorm"
)

// EntityType represents the type of entity for errors mapping
type EntityType string

const (
	// EntityTypeUser represents the user entity
	EntityTypeUser EntityType = "user"
	// EntityTypeTransaction represents the purchase entity
	EntityTypeTransaction EntityType = "transaction"
	// EntityTypeUserLock represents the user lock entity
	EntityTypeUserLock EntityType = "user_lock"
)

// domainErrors pass through MapError untouched
var domainErrors = []error{
	domainErr.ErrUserNotFound,
	domainErr.ErrTransactionNotFound,
	domainErr.ErrInsufficientCredits,
	domainErr.ErrPaymentAlreadyProcessed,
	domainErr.ErrUnauthorizedAccess,
	domainErr.ErrUserLocked,
	domainErr.ErrDuplicateUser,
	domainErr.ErrConstraintViolation,
	domainErr.ErrDatabaseConnection,
}

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError maps a database error to a domain error
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	for _, known := range domainErrors {
		if errors.Is(err, known) {
			return err
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr.ErrNotFound
	}

	errMsg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "could not serialize") ||
		strings.Contains(errMsg, "40001") ||
		strings.Contains(errMsg, "40p01") ||
		strings.Contains(errMsg, "lock timeout"):
		return fmt.Errorf("%w: %s", domainErr.ErrUserLocked, err.Error())

	case strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint"):
		if strings.Contains(errMsg, "email") {
			return domainErr.ErrDuplicateUser
		}
		return domainErr.ErrConstraintViolation

	case strings.Contains(errMsg, "check constraint") ||
		strings.Contains(errMsg, "foreign key constraint"):
		return domainErr.ErrConstraintViolation

	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no connection") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "broken pipe") ||
		strings.Contains(errMsg, "eof"):
		return fmt.Errorf("%w: %s", domainErr.ErrDatabaseConnection, err.Error())

	case strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "deadline exceeded"):
		return fmt.Errorf("%w: %s operation timed out", domainErr.ErrDatabaseConnection, operation)

	default:
		return fmt.Errorf("%w: %s", domainErr.ErrInternalServer, err.Error())
	}
}

// MapEntityNotFoundError maps database errors to specific entity not found errors
func (m *ErrorMapper) MapEntityNotFoundError(err error, entityType EntityType) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		switch entityType {
		case EntityTypeUser:
			return domainErr.ErrUserNotFound
		case EntityTypeTransaction:
			return domainErr.ErrTransactionNotFound
		default:
			return domainErr.ErrNotFound
		}
	}

	return m.MapError(err, string(entityType))
}
