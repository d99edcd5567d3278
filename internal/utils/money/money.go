package money

import (
	"fmt"

	"github.com/SscSPs/splitledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Precision is the number of fractional digits every monetary value is kept at.
const Precision int32 = 2

// Tolerance is the default equality window used across the engine (one cent).
var Tolerance = decimal.New(1, -Precision)

// Round rounds half away from zero to two decimals, which is round-half-up for
// the non-negative amounts the ledger carries.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(Precision)
}

// FromFloat converts a boundary float into an exact two-digit decimal.
// Values arriving with more than two fractional digits are rounded, never truncated.
func FromFloat(f float64) decimal.Decimal {
	return Round(decimal.NewFromFloat(f))
}

// Sum adds every amount and rounds the result.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	if len(amounts) == 0 {
		return decimal.Zero
	}
	return Round(decimal.Sum(decimal.Zero, amounts...))
}

// Subtract returns a - b rounded.
func Subtract(a, b decimal.Decimal) decimal.Decimal {
	return Round(a.Sub(b))
}

// Multiply returns a * b rounded.
func Multiply(a, b decimal.Decimal) decimal.Decimal {
	return Round(a.Mul(b))
}

// Divide returns a / b rounded to two decimals.
func Divide(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: cannot divide %s by zero", apperrors.ErrDivisionByZero, a.String())
	}
	return a.DivRound(b, Precision), nil
}

// Abs returns |amount|.
func Abs(amount decimal.Decimal) decimal.Decimal {
	return amount.Abs()
}

// Equals reports whether a and b are within tolerance of each other (inclusive).
// The tolerance defaults to one cent.
func Equals(a, b decimal.Decimal, tolerance ...decimal.Decimal) bool {
	tol := Tolerance
	if len(tolerance) > 0 {
		tol = tolerance[0]
	}
	return a.Sub(b).Abs().LessThanOrEqual(tol)
}

// IsNegligible reports whether amount is within one cent of zero.
func IsNegligible(amount decimal.Decimal) bool {
	return Equals(amount, decimal.Zero)
}

// NormalizeSplits makes splits add up to total. When the current sum is within
// one cent of total the splits are only rounded. Otherwise every split is
// rescaled by total/currentSum and the last split absorbs the residual so the
// sum is exactly total. Applying it twice yields the same result.
func NormalizeSplits(splits []decimal.Decimal, total decimal.Decimal) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(splits))
	for i, s := range splits {
		out[i] = Round(s)
	}
	if len(out) == 0 {
		return out, nil
	}

	current := Sum(out...)
	if Equals(current, total) {
		return out, nil
	}

	if current.IsZero() {
		return nil, fmt.Errorf("%w: splits sum to zero and cannot be rescaled to %s", apperrors.ErrDivisionByZero, total.String())
	}

	allocated := decimal.Zero
	last := len(out) - 1
	for i := 0; i < last; i++ {
		out[i] = Round(out[i].Mul(total).Div(current))
		allocated = allocated.Add(out[i])
	}
	out[last] = Subtract(total, allocated)
	return out, nil
}

// Format renders amount with the display precision of a currency,
// e.g. 12.3456 at precision 2 is "12.35" and at precision 0 is "12".
func Format(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
