package entity

import (
	"fmt"
	"math"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
)

// SubunitsPerUnit is the minor-unit factor the payment gateway expects (paise, cents)
const SubunitsPerUnit = 100

// ToSubunits converts a major-unit amount into gateway subunits
func ToSubunits(amount int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: negative amount %d", errs.ErrInvalidRequest, amount)
	}
	if amount > math.MaxInt64/SubunitsPerUnit {
		return 0, fmt.Errorf("%w: amount %d overflows", errs.ErrInvalidRequest, amount)
	}
	return amount * SubunitsPerUnit, nil
}

// SubunitsToString converts a subunit amount to a decimal string
// For example:
// - 1015 becomes "10.15"
// - 1000 becomes "10.00"
func SubunitsToString(subunits int64) string {
	isNegative := subunits < 0
	if isNegative {
		subunits = -subunits
	}

	amountStr := fmt.Sprintf("%d", subunits)

	for len(amountStr) < 3 {
		amountStr = "0" + amountStr
	}

	decimalPos := len(amountStr) - 2
	wholePart := amountStr[:decimalPos]
	decimalPart := amountStr[decimalPos:]

	if isNegative {
		return "-" + wholePart + "." + decimalPart
	}
	return wholePart + "." + decimalPart
}

// FormatAmount renders a major-unit amount with two decimal places
func FormatAmount(amount int64) string {
	return SubunitsToString(amount * SubunitsPerUnit)
}
