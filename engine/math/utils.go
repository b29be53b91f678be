package math

import "golang.org/x/exp/constraints"

const (
	// Pi is an approximate representation of pi.
	Pi float32 = 3.14159265358979323846
	// HalfPi is an approximate representation of pi divided by 2.
	HalfPi float32 = 0.5 * Pi
	// Deg2Rad converts degrees to radians when multiplied.
	Deg2Rad float32 = Pi / 180.0
	// Rad2Deg converts radians to degrees when multiplied.
	Rad2Deg float32 = 180.0 / Pi
	// Epsilon is the smallest positive value where 1.0+Epsilon != 1.0.
	Epsilon float32 = 1.192092896e-07
)

// Clamp returns value limited to the range [lo, hi].
func Clamp[T constraints.Ordered](value, lo, hi T) T {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// Max returns the larger of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}
