package payment

import (
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/usecase"
)

// PaymentValidator provides validation for purchase requests
type PaymentValidator struct{}

// NewPaymentValidator creates a new PaymentValidator
func NewPaymentValidator() *PaymentValidator {
	return &PaymentValidator{}
}

// ValidateOrder checks the buyer and resolves the requested plan
func (v *PaymentValidator) ValidateOrder(userID string, planID string) (entity.Plan, error) {
	if userID == "" {
		return entity.Plan{}, errs.ErrMissingDetails
	}

	// plan IDs are matched exactly; "basic" is not "Basic"
	return entity.FindPlan(planID)
}

// ValidateVerify checks the checkout callback fields
func (v *PaymentValidator) ValidateVerify(userID string, req usecase.VerifyRequest) error {
	if userID == "" {
		return errs.ErrInvalidUserID
	}

	if strings.TrimSpace(req.OrderID) == "" || strings.TrimSpace(req.PaymentID) == "" {
		return fmt.Errorf("%w: order ID and payment ID are required", errs.ErrMissingDetails)
	}

	return nil
}
