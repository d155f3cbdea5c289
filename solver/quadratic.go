// Package solver finds real roots of polynomials up to degree four in closed form
// Functions return NaN where no real root exists; none of them keep state
package solver

import (
	"math"
	"math/cmplx"
)

// FirstQuadratic returns the smaller real root of a t² + b t + c
// Falls back to the linear root when a is zero; NaN when no real root
func FirstQuadratic(a, b, c float64) float64 {
	lo, _ := quadraticRoots(a, b, c)
	return lo
}

// SecondQuadratic returns the larger real root of a t² + b t + c
// Falls back to the linear root when a is zero; NaN when no real root
func SecondQuadratic(a, b, c float64) float64 {
	_, hi := quadraticRoots(a, b, c)
	return hi
}

// quadraticRoots returns the ordered real roots
// The sign of b picks the cancellation-free branch, the other root follows from c/q
func quadraticRoots(a, b, c float64) (lo, hi float64) {
	if a == 0 {
		r := linear(b, c)
		return r, r
	}
	delta := b*b - 4*a*c
	if delta < 0 {
		return math.NaN(), math.NaN()
	}
	sq := math.Sqrt(delta)

	var q float64
	if b >= 0 {
		q = -(b + sq) / 2
	} else {
		q = (sq - b) / 2
	}
	if q == 0 {
		return 0, 0
	}
	r1, r2 := q/a, c/q
	return min(r1, r2), max(r1, r2)
}

// Quadratic returns both complex roots of a t² + b t + c, a != 0
func Quadratic(a, b, c complex128) (complex128, complex128) {
	delta := b*b - 4*a*c
	sq := cmplx.Sqrt(delta)
	return (-b - sq) / (2 * a), (-b + sq) / (2 * a)
}

func linear(b, c float64) float64 {
	if b == 0 {
		return math.NaN()
	}
	return -c / b
}
