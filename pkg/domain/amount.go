package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places kept for balances and
// transaction amounts.
const AmountScale = 2

// maxAmount is the exclusive magnitude bound of a NUMERIC(20,2) column.
var maxAmount = decimal.New(1, 18)

var (
	ErrAmountScale      = fmt.Errorf("%w: amount must have at most %d decimal places", ErrValidation, AmountScale)
	ErrAmountOutOfRange = fmt.Errorf("%w: amount must be less than 1e18 in magnitude", ErrValidation)
)

// ValidateAmount reports whether d can be stored without rounding or
// overflow, so that what is returned to the caller is what gets persisted.
func ValidateAmount(d decimal.Decimal) error {
	if !d.Equal(d.Round(AmountScale)) {
		return ErrAmountScale
	}
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		return ErrAmountOutOfRange
	}
	return nil
}
