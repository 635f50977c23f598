// Package money decodes the fixed-point numeric encodings used by the DI
// file format. All arithmetic is exact decimal; floats would drift across
// the repeated multiplications in the allocation engine.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of implied decimal places of a fixed-point field.
type Scale int32

const (
	// ScaleCents covers most monetary fields (divisor 100)
	ScaleCents Scale = 2
	// ScaleQuantity covers merchandise quantities (divisor 100 000)
	ScaleQuantity Scale = 5
	// ScaleUnitPrice covers merchandise unit prices (divisor 10 000 000)
	ScaleUnitPrice Scale = 7
)

// rateScale is the precision kept for implied exchange rates
const rateScale = 8

// DecodeScaled interprets raw as an integer and shifts it right by the
// scale's implied decimal places: DecodeScaled("123456", ScaleCents) is
// 1234.56. An empty field decodes to zero.
func DecodeScaled(raw string, scale Scale) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode fixed-point %q: %w", raw, err)
	}
	if !d.IsInteger() {
		return decimal.Zero, fmt.Errorf("decode fixed-point %q: not an integer", raw)
	}
	return d.Shift(-int32(scale)), nil
}

// ImpliedRate returns brl/foreign when both sides are nonzero, and an
// explicit zero otherwise. A zero-amount pair has no meaningful rate; this
// never errors and never divides by zero.
func ImpliedRate(brl, foreign decimal.Decimal) decimal.Decimal {
	if brl.IsZero() || foreign.IsZero() {
		return decimal.Zero
	}
	return brl.DivRound(foreign, rateScale)
}

// ParseBRL parses a Brazilian display-formatted amount ("1.234,56",
// optionally prefixed with "R$") into a decimal.
func ParseBRL(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse BRL amount %q: %w", s, err)
	}
	return d, nil
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := decimal.Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}
