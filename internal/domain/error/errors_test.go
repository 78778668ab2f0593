package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	if ErrInsufficientCredits.Error() != "no credit balance" {
		t.Errorf("ErrInsufficientCredits has unexpected message: %s", ErrInsufficientCredits.Error())
	}
	if ErrPaymentAlreadyProcessed.Error() != "payment already processed" {
		t.Errorf("ErrPaymentAlreadyProcessed has unexpected message: %s", ErrPaymentAlreadyProcessed.Error())
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InsufficientCredits", ErrInsufficientCredits, 4001},
		{"InvalidRequest", ErrInvalidRequest, 4002},
		{"MissingDetails", ErrMissingDetails, 4003},
		{"EmailAlreadyRegistered", ErrEmailAlreadyRegistered, 4004},
		{"DuplicateUser", ErrDuplicateUser, 4004},
		{"InvalidPlan", ErrInvalidPlan, 4005},
		{"PaymentAlreadyProcessed", ErrPaymentAlreadyProcessed, 4008},
		{"InvalidToken", ErrInvalidToken, 4012},
		{"UnauthorizedAccess", ErrUnauthorizedAccess, 4030},
		{"UserNotFound", ErrUserNotFound, 4040},
		{"UserLocked", ErrUserLocked, 4230},
		{"ProviderTimeout", ErrProviderTimeout, 5040},
		{"ProviderRateLimited", NewProviderError("clipdrop", 429, "slow down"), 4290},
		{"ProviderFailure", NewProviderError("clipdrop", 500, "boom"), 5020},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrInvalidUserID), 4002},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestInsufficientCreditsError(t *testing.T) {
	err := NewInsufficientCreditsError("u-789", 1, 0)
	if err == nil {
		t.Fatal("NewInsufficientCreditsError returned nil")
	}

	expectedErrMsg := "insufficient credits for user u-789: required 1, available 0"
	if err.Error() != expectedErrMsg {
		t.Errorf("InsufficientCreditsError.Error() = %s, want %s", err.Error(), expectedErrMsg)
	}

	if !errors.Is(err, ErrInsufficientCredits) {
		t.Errorf("errors.Is(err, ErrInsufficientCredits) = false, want true")
	}

	if !IsInsufficientCreditsError(fmt.Errorf("consume: %w", err)) {
		t.Errorf("IsInsufficientCreditsError(wrapped) = false, want true")
	}

	var typed *InsufficientCreditsError
	if !errors.As(err, &typed) {
		t.Fatalf("errors.As failed: not a *InsufficientCreditsError")
	}
	if typed.LogFields()["balance"] != int64(0) {
		t.Errorf("LogFields()[balance] = %v, want 0", typed.LogFields()["balance"])
	}
}

func TestProviderError(t *testing.T) {
	err := fmt.Errorf("generate: %w", NewProviderError("clipdrop", 422, "prompt rejected"))

	providerErr, ok := AsProviderError(err)
	if !ok {
		t.Fatal("AsProviderError returned false for a wrapped ProviderError")
	}
	if providerErr.StatusCode != 422 {
		t.Errorf("StatusCode = %d, want 422", providerErr.StatusCode)
	}

	expectedErrMsg := "clipdrop responded with status 422: prompt rejected"
	if providerErr.Error() != expectedErrMsg {
		t.Errorf("ProviderError.Error() = %s, want %s", providerErr.Error(), expectedErrMsg)
	}

	bare := NewProviderError("razorpay", 502, "")
	if bare.Error() != "razorpay responded with status 502" {
		t.Errorf("ProviderError.Error() = %s", bare.Error())
	}

	if _, ok := AsProviderError(ErrInternalServer); ok {
		t.Errorf("AsProviderError(ErrInternalServer) = true, want false")
	}
}

func TestPaymentError(t *testing.T) {
	payErr := NewPaymentError("order_1", "pay_1", "tx-1", "u-1", "settle failed", ErrPaymentAlreadyProcessed)

	expectedErrMsg := "payment error for order order_1 (payment: pay_1, transaction: tx-1): settle failed - payment already processed"
	if payErr.Error() != expectedErrMsg {
		t.Errorf("PaymentError.Error() = %s, want %s", payErr.Error(), expectedErrMsg)
	}

	if !errors.Is(payErr, ErrPaymentAlreadyProcessed) {
		t.Errorf("errors.Is(payErr, ErrPaymentAlreadyProcessed) = false, want true")
	}

	var typed *PaymentError
	if !errors.As(payErr, &typed) {
		t.Fatalf("errors.As failed: not a *PaymentError")
	}
	if typed.LogFields()["error_code"] != CodePaymentAlreadyProcessed {
		t.Errorf("LogFields()[error_code] = %v, want %d", typed.LogFields()["error_code"], CodePaymentAlreadyProcessed)
	}
}

func TestErrorHelperFunctions(t *testing.T) {
	if IsInsufficientCreditsError(ErrInvalidUserID) {
		t.Errorf("IsInsufficientCreditsError(ErrInvalidUserID) = true, want false")
	}

	if !IsUserNotFoundError(fmt.Errorf("wrapped: %w", ErrUserNotFound)) {
		t.Errorf("IsUserNotFoundError(wrapped) = false, want true")
	}

	for _, err := range []error{ErrNotFound, ErrUserNotFound, ErrTransactionNotFound, ErrOrderNotFound} {
		if !IsNotFoundError(err) {
			t.Errorf("IsNotFoundError(%v) = false, want true", err)
		}
	}

	if !IsUserLockedError(fmt.Errorf("acquire: %w", ErrUserLocked)) {
		t.Errorf("IsUserLockedError(wrapped) = false, want true")
	}
}
