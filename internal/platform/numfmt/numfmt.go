// Package numfmt renders float64 values for analysis text.
package numfmt

import (
	"math"
	"math/big"
	"strconv"
)

// Fixed renders v with exactly digits decimals. Rounding is applied to the
// exact binary value with halves rounded away from zero, so 2.5 -> "3" and
// 1.005 -> "1.00".
func Fixed(v float64, digits int) string {
	if digits < 0 {
		digits = 0
	}
	if special, ok := nonFinite(v); ok {
		return special
	}
	return new(big.Rat).SetFloat64(v).FloatString(digits)
}

// Round returns v rounded like Fixed, as a number.
func Round(v float64, digits int) float64 {
	out, err := strconv.ParseFloat(Fixed(v, digits), 64)
	if err != nil {
		return v
	}
	return out
}

// Plain renders the shortest decimal that round-trips, without exponent:
// 60 -> "60", 100.0/3 -> "33.333333333333336".
func Plain(v float64) string {
	if special, ok := nonFinite(v); ok {
		return special
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func nonFinite(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "NaN", true
	case math.IsInf(v, 1):
		return "Infinity", true
	case math.IsInf(v, -1):
		return "-Infinity", true
	}
	return "", false
}
