// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// Sign returns -1, 0, or 1 depending on the sign of value. Unlike
// math.Copysign, a zero value has no sign.
func Sign(value float64) float64 {
	switch {
	case value > 0:
		return 1.0
	case value < 0:
		return -1.0
	default:
		return 0.0
	}
}

// Finite returns whether all the argument values are neither NaN nor
// infinite
func Finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Steps returns the number of whole increments of size delta that fit
// in total. A small tolerance absorbs binary rounding, so that
// Steps(1, 0.005) is 200 and not 199.
func Steps(total, delta float64) int {
	return int(math.Floor(total/delta + 1e-9))
}
