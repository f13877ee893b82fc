package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultCurrency is used whenever a caller leaves the currency blank.
const DefaultCurrency = "USD"

var (
	// ErrUnknownCurrency signals an ISO 4217 code that x/text does not recognise.
	ErrUnknownCurrency = errors.New("money: unknown currency")
	// ErrPrecision is returned when an amount carries more fractional digits than the currency's minor unit.
	ErrPrecision = errors.New("money: amount exceeds currency precision")
	// ErrNotFinite is returned for NaN or infinite float input.
	ErrNotFinite = errors.New("money: amount is not finite")
	// ErrOverflow is returned when an amount does not fit into int64 minor units.
	ErrOverflow = errors.New("money: amount overflows minor units")
)

var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(math.MinInt64)
)

const (
	// MaxExponent bounds the decimal exponent accepted from callers in either
	// direction. Anything beyond it overflows int64 minor units or carries
	// more precision than any currency.
	MaxExponent = 18
	// maxCoefficientBits bounds the unscaled value of accepted decimals.
	maxCoefficientBits = 128
	maxTextDigits      = 24
)

// InRange reports whether d is small enough to compare, shift and round
// cheaply. Values outside it must be rejected before any arithmetic.
func InRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > MaxExponent || exp < -MaxExponent {
		return false
	}
	return d.Coefficient().BitLen() <= maxCoefficientBits
}

// Text renders d for error messages. In-range values print in full; others
// print as a truncated coefficient with an exponent.
func Text(d decimal.Decimal) string {
	if InRange(d) {
		return d.String()
	}
	digits := d.Coefficient().String()
	if len(digits) > maxTextDigits {
		digits = digits[:maxTextDigits] + "..."
	}
	return fmt.Sprintf("%se%d", digits, d.Exponent())
}

// Amount is a monetary value expressed in the minor unit of its currency
// (cents for USD, yen for JPY). The currency travels separately.
type Amount int64

// Minor returns the raw minor-unit count.
func (a Amount) Minor() int64 { return int64(a) }

// Decimal converts the amount back to major units for the given currency.
func (a Amount) Decimal(code string) decimal.Decimal {
	return decimal.NewFromInt(int64(a)).Shift(-Exponent(code))
}

// NormalizeCurrency upper-cases and validates an ISO 4217 code. Blank input
// resolves to DefaultCurrency.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency, nil
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return unit.String(), nil
}

// Exponent reports how many fractional digits the currency's minor unit has.
// Unknown codes fall back to two digits.
func Exponent(code string) int32 {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return 2
	}
	scale, _ := currency.Standard.Rounding(unit)
	return int32(scale)
}

// FromDecimal converts a major-unit decimal (e.g. 129.99) into minor units.
// Values with more fractional digits than the currency allows are rejected
// rather than rounded.
func FromDecimal(d decimal.Decimal, code string) (Amount, error) {
	if d.Exponent() < -MaxExponent {
		return 0, fmt.Errorf("%w: %s %s", ErrPrecision, Text(d), strings.ToUpper(code))
	}
	if !InRange(d) {
		return 0, fmt.Errorf("%w: %s", ErrOverflow, Text(d))
	}
	shifted := d.Shift(Exponent(code))
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("%w: %s %s", ErrPrecision, d.String(), strings.ToUpper(code))
	}
	if shifted.GreaterThan(maxMinor) || shifted.LessThan(minMinor) {
		return 0, fmt.Errorf("%w: %s", ErrOverflow, d.String())
	}
	return Amount(shifted.IntPart()), nil
}

// Parse reads a major-unit string such as "2,500.00" or "129.99".
func Parse(s, code string) (Amount, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("money: parse %q: %w", s, err)
	}
	return FromDecimal(d, code)
}

// FromFloat converts float input at the boundary. The float is read through its
// shortest decimal representation so 129.99 maps to exactly 12999 cents.
func FromFloat(f float64, code string) (Amount, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrNotFinite
	}
	return FromDecimal(decimal.NewFromFloat(f), code)
}

// MustParse is Parse for literal sample data; it panics on error.
func MustParse(s, code string) Amount {
	a, err := Parse(s, code)
	if err != nil {
		panic(err)
	}
	return a
}
