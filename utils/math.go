package utils

import "math"

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// ModAngDeg folds an angle in degrees into [0, period).
func ModAngDeg(ang, period float64) float64 {
	return math.Mod(math.Mod(ang, period)+period, period)
}

// AbsInt returns the absolute value of n.
func AbsInt(n int) int {
	if n < 0 {
		return -1 * n
	}
	return n
}

// MaxInt returns the larger of a and b.
func MaxInt(a, b int) int {
	if a < b {
		return b
	}
	return a
}

// MinInt returns the smaller of a and b.
func MinInt(a, b int) int {
	if a > b {
		return b
	}
	return a
}

// IsOdd reports whether n is odd.
func IsOdd(n int) bool {
	return AbsInt(n)%2 == 1
}
