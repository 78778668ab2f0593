package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientCredits     = 4001
	CodeInvalidRequest          = 4002
	CodeMissingDetails          = 4003
	CodeEmailAlreadyRegistered  = 4004
	CodeInvalidPlan             = 4005
	CodePromptRequired          = 4006
	CodePromptTooLong           = 4007
	CodePaymentAlreadyProcessed = 4008
	CodePaymentNotSuccessful    = 4009
	CodeInvalidPaymentID        = 4010
	CodeInvalidCredentials      = 4011
	CodeUnauthorized            = 4012
	CodeForbidden               = 4030
	CodeUserNotFound            = 4040
	CodeTransactionNotFound     = 4041
	CodeOrderNotFound           = 4042
	CodeUserLocked              = 4230
	CodeRateLimited             = 4290

	// 5xxx - Server errors
	CodeInternalServer      = 5000
	CodeProviderFailure     = 5020
	CodeServiceUnavailable  = 5030
	CodeProviderTimeout     = 5040
	CodeDatabaseUnavailable = 5031
)

// Base error types
var (
	// ErrMissingDetails is returned when a required request field is empty
	ErrMissingDetails = errors.New("missing details")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidUserID is returned when the user ID is empty or malformed
	ErrInvalidUserID = errors.New("invalid user ID")

	// ErrEmailAlreadyRegistered is returned when registering with an email that is taken
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// ErrInvalidCredentials is returned when a password does not match
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrMissingToken is returned when no auth token accompanies a protected request
	ErrMissingToken = errors.New("missing token")

	// ErrInvalidToken is returned when a token cannot be verified or carries no user
	ErrInvalidToken = errors.New("invalid token")

	// ErrInsufficientCredits is returned when a user has no credits left to spend
	ErrInsufficientCredits = errors.New("no credit balance")

	// ErrNegativeCredits is returned when an operation would use a negative credit amount
	ErrNegativeCredits = errors.New("credit amount cannot be negative")

	// ErrInvalidPlan is returned for plan IDs outside the catalog
	ErrInvalidPlan = errors.New("invalid plan")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrOrderNotFound is returned when the payment gateway has no such order
	ErrOrderNotFound = errors.New("order not found")

	// ErrPaymentAlreadyProcessed is returned when a transaction was already settled
	ErrPaymentAlreadyProcessed = errors.New("payment already processed")

	// ErrPaymentNotSuccessful is returned when the gateway reports an uncaptured payment
	ErrPaymentNotSuccessful = errors.New("payment not successful")

	// ErrInvalidPaymentID is returned when the gateway cannot find the payment
	ErrInvalidPaymentID = errors.New("invalid payment ID")

	// ErrInvalidSignature is returned when the gateway signature does not match
	ErrInvalidSignature = errors.New("invalid payment signature")

	// ErrUnauthorizedAccess is returned when a user touches another user's transaction
	ErrUnauthorizedAccess = errors.New("unauthorized access")

	// ErrPromptRequired is returned for an empty prompt
	ErrPromptRequired = errors.New("prompt is required")

	// ErrPromptTooLong is returned when the prompt exceeds the maximum length
	ErrPromptTooLong = errors.New("prompt too long")

	// ErrEmptyImage is returned when the provider answers with an empty body
	ErrEmptyImage = errors.New("empty response from image generation service")

	// ErrProviderTimeout is returned when an upstream call times out
	ErrProviderTimeout = errors.New("upstream request timed out")

	// ErrProviderUnavailable is returned when an upstream host cannot be reached
	ErrProviderUnavailable = errors.New("upstream service unavailable")

	// ErrRateLimited is returned when a caller exceeds its request budget
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrUserLocked is returned when a user is locked by another operation
	ErrUserLocked = errors.New("user is locked by another operation")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrDuplicateUser is returned when trying to create a user that already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	var providerErr *ProviderError
	switch {
	case errors.Is(err, ErrInsufficientCredits):
		return CodeInsufficientCredits
	case errors.Is(err, ErrMissingDetails):
		return CodeMissingDetails
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrInvalidUserID), errors.Is(err, ErrInvalidSignature):
		return CodeInvalidRequest
	case errors.Is(err, ErrEmailAlreadyRegistered), errors.Is(err, ErrDuplicateUser):
		return CodeEmailAlreadyRegistered
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrMissingToken), errors.Is(err, ErrInvalidToken):
		return CodeUnauthorized
	case errors.Is(err, ErrInvalidPlan):
		return CodeInvalidPlan
	case errors.Is(err, ErrPromptRequired):
		return CodePromptRequired
	case errors.Is(err, ErrPromptTooLong):
		return CodePromptTooLong
	case errors.Is(err, ErrPaymentAlreadyProcessed):
		return CodePaymentAlreadyProcessed
	case errors.Is(err, ErrPaymentNotSuccessful):
		return CodePaymentNotSuccessful
	case errors.Is(err, ErrInvalidPaymentID):
		return CodeInvalidPaymentID
	case errors.Is(err, ErrUnauthorizedAccess):
		return CodeForbidden
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrOrderNotFound):
		return CodeOrderNotFound
	case errors.Is(err, ErrUserLocked):
		return CodeUserLocked
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimited
	case errors.Is(err, ErrProviderTimeout):
		return CodeProviderTimeout
	case errors.Is(err, ErrProviderUnavailable):
		return CodeServiceUnavailable
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabaseUnavailable
	case errors.As(err, &providerErr):
		if providerErr.StatusCode == 429 {
			return CodeRateLimited
		}
		return CodeProviderFailure
	default:
		return CodeInternalServer
	}
}

// InsufficientCreditsError provides detailed error information for an empty credit balance
type InsufficientCreditsError struct {
	UserID  string
	Needed  int64
	Balance int64
}

// Error implements the error interface
func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits for user %s: required %d, available %d",
		e.UserID, e.Needed, e.Balance)
}

// Is checks if the target error is an ErrInsufficientCredits
func (e *InsufficientCreditsError) Is(target error) bool {
	return target == ErrInsufficientCredits
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientCreditsError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_credits",
		"user_id":    e.UserID,
		"needed":     e.Needed,
		"balance":    e.Balance,
		"error_code": CodeInsufficientCredits,
	}
}

// NewInsufficientCreditsError creates a new detailed insufficient credits error
func NewInsufficientCreditsError(userID string, needed, balance int64) error {
	return &InsufficientCreditsError{
		UserID:  userID,
		Needed:  needed,
		Balance: balance,
	}
}

// ProviderError is a non-2xx answer from an upstream HTTP API
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s responded with status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s responded with status %d: %s", e.Provider, e.StatusCode, e.Message)
}

// LogFields returns a map of fields for structured logging
func (e *ProviderError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "provider_error",
		"provider":    e.Provider,
		"status_code": e.StatusCode,
		"message":     e.Message,
	}
}

// NewProviderError creates a new upstream error
func NewProviderError(provider string, statusCode int, message string) error {
	return &ProviderError{
		Provider:   provider,
		StatusCode: statusCode,
		Message:    message,
	}
}

// PaymentError represents an error while verifying or settling a payment
type PaymentError struct {
	OrderID       string
	PaymentID     string
	TransactionID string
	UserID        string
	Reason        string
	Err           error
}

// Error implements the error interface for PaymentError
func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment error for order %s (payment: %s, transaction: %s): %s - %v",
		e.OrderID, e.PaymentID, e.TransactionID, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *PaymentError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *PaymentError) LogFields() map[string]any {
	return map[string]any{
		"error_type":     "payment_error",
		"order_id":       e.OrderID,
		"payment_id":     e.PaymentID,
		"transaction_id": e.TransactionID,
		"user_id":        e.UserID,
		"reason":         e.Reason,
		"error":          e.Err.Error(),
		"error_code":     ErrorCode(e.Err),
	}
}

// NewPaymentError creates a detailed payment error
func NewPaymentError(orderID, paymentID, transactionID, userID, reason string, err error) error {
	return &PaymentError{
		OrderID:       orderID,
		PaymentID:     paymentID,
		TransactionID: transactionID,
		UserID:        userID,
		Reason:        reason,
		Err:           err,
	}
}

// IsInsufficientCreditsError checks if the error is related to an empty credit balance
func IsInsufficientCreditsError(err error) bool {
	return errors.Is(err, ErrInsufficientCredits)
}

// IsUserNotFoundError checks if the error is a user not found error
func IsUserNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}

// IsUserLockedError checks if the error is related to a locked user
func IsUserLockedError(err error) bool {
	return errors.Is(err, ErrUserLocked)
}

// AsProviderError extracts a ProviderError from the chain
func AsProviderError(err error) (*ProviderError, bool) {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr, true
	}
	return nil, false
}
