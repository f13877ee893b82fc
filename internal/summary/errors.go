package summary

import (
	"errors"
	"fmt"

	"finitefield.org/hanko-blocks/internal/money"
)

var (
	// ErrInvalidQuantity matches quantities that are zero, negative or fractional.
	ErrInvalidQuantity = errors.New("summary: invalid quantity")
	// ErrInvalidPrice matches negative or non-finite prices, shipping and discount amounts.
	ErrInvalidPrice = errors.New("summary: invalid price")
	// ErrDivisionByZero matches discount percentage requests against a non-positive original price.
	ErrDivisionByZero = errors.New("summary: division by zero")
	// ErrInvalidRate signals a negative or otherwise unusable tax rate.
	ErrInvalidRate = errors.New("summary: invalid rate")
	// ErrOverflow signals sums that no longer fit into int64 minor units.
	ErrOverflow = errors.New("summary: amount overflow")
)

// InvalidQuantityError reports the offending line. Index is -1 when the value
// is not tied to a line item.
type InvalidQuantityError struct {
	Index int
	Value string
}

func (e *InvalidQuantityError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("summary: item %d: quantity %s must be a positive integer", e.Index, e.Value)
	}
	return fmt.Sprintf("summary: quantity %s must be a positive integer", e.Value)
}

// Is lets callers match with errors.Is(err, ErrInvalidQuantity).
func (e *InvalidQuantityError) Is(target error) bool { return target == ErrInvalidQuantity }

// InvalidPriceError reports a bad monetary input. Field names the input
// ("unitPrice", "shipping", "taxAmount", "discountAmount", "sale", "subtotal").
type InvalidPriceError struct {
	Index  int
	Field  string
	Value  string
	Reason string
}

func (e *InvalidPriceError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must not be negative"
	}
	if e.Index >= 0 {
		return fmt.Sprintf("summary: item %d: %s %s %s", e.Index, e.Field, e.Value, reason)
	}
	return fmt.Sprintf("summary: %s %s %s", e.Field, e.Value, reason)
}

// Is lets callers match with errors.Is(err, ErrInvalidPrice).
func (e *InvalidPriceError) Is(target error) bool { return target == ErrInvalidPrice }

// DivisionByZeroError is returned by DiscountPercentage when the original price is not positive.
type DivisionByZeroError struct {
	Original money.Amount
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("summary: discount percentage undefined for original price %d", e.Original)
}

// Is lets callers match with errors.Is(err, ErrDivisionByZero).
func (e *DivisionByZeroError) Is(target error) bool { return target == ErrDivisionByZero }

// FieldOf extracts the field and line index of a validation error so callers
// can surface the message next to the offending input. ok is false for
// errors outside this package's taxonomy.
func FieldOf(err error) (field string, index int, ok bool) {
	var qty *InvalidQuantityError
	if errors.As(err, &qty) {
		return "quantity", qty.Index, true
	}
	var price *InvalidPriceError
	if errors.As(err, &price) {
		return price.Field, price.Index, true
	}
	var div *DivisionByZeroError
	if errors.As(err, &div) {
		return "original", -1, true
	}
	var rate *rateError
	if errors.As(err, &rate) {
		return rate.field, -1, true
	}
	if errors.Is(err, ErrInvalidRate) {
		return "taxRate", -1, true
	}
	return "", -1, false
}
