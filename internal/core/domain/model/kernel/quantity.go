package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Quantity is a non-negative exact-decimal amount. It backs every stock
// quantity, allocated quantity, and box weight in the pipeline, so that
// arithmetic on partial pallets and kilogram weights never accumulates
// floating-point drift.
//
// The zero value is a valid zero quantity. Quantity is immutable; all
// arithmetic returns new values.
type Quantity struct {
	value decimal.Decimal
}

// ZeroQuantity returns the zero amount.
func ZeroQuantity() Quantity {
	return Quantity{}
}

// NewQuantity creates a Quantity from a decimal value.
// Negative values are rejected.
func NewQuantity(value decimal.Decimal) (Quantity, error) {
	if value.IsNegative() {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%s is negative", value))
	}
	return Quantity{value: value}, nil
}

// NewQuantityFromString parses a decimal string such as "40.5".
func NewQuantityFromString(s string) (Quantity, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause("quantity", err)
	}
	return NewQuantity(d)
}

// NewQuantityFromInt creates a Quantity from a whole number.
func NewQuantityFromInt(n int64) (Quantity, error) {
	return NewQuantity(decimal.NewFromInt(n))
}

// Add returns q + other.
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity{value: q.value.Add(other.value)}
}

// Sub returns q − other, failing when the result would be negative.
// Stock quantities can never go below zero.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	result := q.value.Sub(other.value)
	if result.IsNegative() {
		return Quantity{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%s - %s is negative", q.value, other.value))
	}
	return Quantity{value: result}, nil
}

// Min returns the smaller of q and other.
func (q Quantity) Min(other Quantity) Quantity {
	if q.value.LessThan(other.value) {
		return q
	}
	return other
}

// IsZero reports whether the amount is exactly zero.
func (q Quantity) IsZero() bool {
	return q.value.IsZero()
}

// IsPositive reports whether the amount is strictly greater than zero.
func (q Quantity) IsPositive() bool {
	return q.value.IsPositive()
}

// LessThan reports q < other.
func (q Quantity) LessThan(other Quantity) bool {
	return q.value.LessThan(other.value)
}

// LessThanOrEqual reports q ≤ other.
func (q Quantity) LessThanOrEqual(other Quantity) bool {
	return q.value.LessThanOrEqual(other.value)
}

// GreaterThan reports q > other.
func (q Quantity) GreaterThan(other Quantity) bool {
	return q.value.GreaterThan(other.value)
}

// IsEqual compares two quantities by numeric value.
func (q Quantity) IsEqual(other Quantity) bool {
	return q.value.Equal(other.value)
}

// Decimal returns the underlying decimal value for persistence adapters.
func (q Quantity) Decimal() decimal.Decimal {
	return q.value
}

// String returns the canonical decimal representation.
func (q Quantity) String() string {
	return q.value.String()
}
