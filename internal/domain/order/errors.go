package order

import (
	"errors"

	"nest/internal/pkg/errs"
)

// All of these are validation failures: the payload was understood but cannot
// be applied as-is.
var (
	ErrMissingReference   = errs.Mark(errors.New("reference is required"), errs.ErrValidation)
	ErrEmptyOrder         = errs.Mark(errors.New("order has no line items"), errs.ErrValidation)
	ErrInvalidQuantity    = errs.Mark(errors.New("quantity must be positive"), errs.ErrValidation)
	ErrNegativeAmount     = errs.Mark(errors.New("amount must not be negative"), errs.ErrValidation)
	ErrTotalMismatch      = errs.Mark(errors.New("order total does not match line items minus discount"), errs.ErrValidation)
	ErrEmptyReturn        = errs.Mark(errors.New("return has no line items"), errs.ErrValidation)
	ErrReturnExceedsOrder = errs.Mark(errors.New("return exceeds remaining order contents"), errs.ErrValidation)
	ErrOrderFullyReversed = errs.Mark(errors.New("order is already fully reversed"), errs.ErrValidation)
	ErrReturnMismatch     = errs.Mark(errors.New("return does not belong to order"), errs.ErrValidation)

	// ErrOrderMissing is returned when a return references an order that has
	// not been stored (yet). Deliveries can arrive out of order, so callers
	// may retry.
	ErrOrderMissing = errs.Mark(errors.New("referenced order not found"), errs.ErrValidation)
)
