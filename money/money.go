/*
Package money converts monetary input in any of the accepted representations
(string, decimal.Decimal, float64, int/int64 dollar amounts) into signed
integer cents, and rejects amounts outside the allowed range.

WHY INTEGER CENTS:
  Fractional-cent arithmetic is an explicit Non-goal. Every downstream
  component (ledger, solvers, validator) works exclusively in int64 cents
  so rounding happens exactly once, here, at the boundary.
*/
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxAmountCents is the largest magnitude accepted for any monetary field
// ($10,000,000.00).
const MaxAmountCents int64 = 1_000_000_000

// ErrInvalidAmount is returned when an amount cannot be parsed or exceeds
// MaxAmountCents.
var ErrInvalidAmount = errors.New("invalid monetary amount")

// InvalidAmountError carries the offending value for diagnostics.
type InvalidAmountError struct {
	Value any
	Cause error
}

func (e *InvalidAmountError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid monetary amount %v: %v", e.Value, e.Cause)
	}
	return fmt.Sprintf("invalid monetary amount %v", e.Value)
}

func (e *InvalidAmountError) Unwrap() error { return ErrInvalidAmount }

var centsFactor = decimal.NewFromInt(100)

// ToCents converts a monetary value to signed integer cents, rounding
// half-up at the hundredth, matching the reference implementation's
// ROUND_HALF_UP behavior (decimal's own Round is half-even, so the
// half-up correction is applied explicitly below).
func ToCents(amount any) (int64, error) {
	d, err := toDecimal(amount)
	if err != nil {
		return 0, &InvalidAmountError{Value: amount, Cause: err}
	}

	rounded := roundHalfUp(d)
	cents := rounded.Mul(centsFactor)
	if !cents.IsInteger() {
		// Guards against decimal precision edge cases; should not occur
		// after roundHalfUp to the hundredth.
		cents = cents.Round(0)
	}
	value := cents.IntPart()

	if value > MaxAmountCents || value < -MaxAmountCents {
		return 0, &InvalidAmountError{Value: amount, Cause: fmt.Errorf("exceeds maximum allowed value $%s", decimal.NewFromInt(MaxAmountCents).Div(centsFactor).StringFixed(2))}
	}
	return value, nil
}

func toDecimal(amount any) (decimal.Decimal, error) {
	switch v := amount.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		return decimal.NewFromString(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported monetary type %T", amount)
	}
}

// roundHalfUp rounds d to two decimal places using round-half-away-from-zero.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	scaled := d.Mul(centsFactor)
	floor := scaled.Floor()
	frac := scaled.Sub(floor)
	half := decimal.NewFromFloat(0.5)

	var roundedScaled decimal.Decimal
	switch {
	case d.IsNegative():
		// Mirror of the positive case: round away from zero.
		ceil := scaled.Ceil()
		fracNeg := ceil.Sub(scaled)
		if fracNeg.GreaterThanOrEqual(half) {
			roundedScaled = ceil.Sub(decimal.NewFromInt(1))
		} else {
			roundedScaled = ceil
		}
	default:
		if frac.GreaterThanOrEqual(half) {
			roundedScaled = floor.Add(decimal.NewFromInt(1))
		} else {
			roundedScaled = floor
		}
	}
	return roundedScaled.Div(centsFactor)
}

// CentsToString renders integer cents as a "<dollars>.<cc>" string.
func CentsToString(cents int64) string {
	sign := ""
	abs := cents
	if abs < 0 {
		sign = "-"
		abs = -abs
	}
	return fmt.Sprintf("%s%d.%02d", sign, abs/100, abs%100)
}
