package solver

import (
	"math"
	"math/cmplx"
)

// Cubic returns the three complex roots of a t³ + b t² + c t + d
// The first root is always real
func Cubic(a, b, c, d float64) [3]complex128 {
	if a == 0 {
		return degenerateCubic(b, c, d)
	}
	z0 := RealCubic(a, b, c, d)
	b, c = b/a, c/a

	// Deflate by (t - z0)
	z1, z2 := Quadratic(1, complex(b+z0, 0), complex(c+z0*(b+z0), 0))
	return [3]complex128{complex(z0, 0), z1, z2}
}

// RealCubic returns one real root of a t³ + b t² + c t + d, a != 0
// Hyperbolic root sum for a positive discriminant, trigonometric form otherwise
func RealCubic(a, b, c, d float64) float64 {
	b, c, d = b/a, c/a, d/a

	s := -b / 3
	p := c - b*b/3
	q := b*(2*b*b-9*c)/27 + d
	delta := q*q + 4*p*p*p/27

	switch {
	case delta > 0:
		sq := math.Sqrt(delta)
		s += math.Cbrt((-q+sq)/2) + math.Cbrt((-q-sq)/2)
	case delta < 0:
		// Three real roots; take the principal one
		z := complex(-q, math.Sqrt(-delta)) / 2
		mod := cmplx.Abs(z)
		s += 2 * math.Cbrt(mod) * math.Cos(cmplx.Phase(z)/3)
	default:
		if p != 0 {
			s += 3 * q / p
		}
	}
	return polish(s, 1, b, c, d)
}

func degenerateCubic(b, c, d float64) [3]complex128 {
	nan := cmplx.NaN()
	if b == 0 {
		if c == 0 {
			return [3]complex128{nan, nan, nan}
		}
		return [3]complex128{complex(-d/c, 0), nan, nan}
	}
	z0, z1 := Quadratic(complex(b, 0), complex(c, 0), complex(d, 0))
	return [3]complex128{z0, z1, nan}
}

// polish refines a real cubic root with Newton steps, keeping the best
func polish(x, a, b, c, d float64) float64 {
	best, bestRes := x, math.Abs(((a*x+b)*x+c)*x+d)
	for range 3 {
		f := ((a*x+b)*x + c)*x + d
		df := (3*a*x+2*b)*x + c
		if df == 0 {
			break
		}
		x -= f / df
		if res := math.Abs(((a*x+b)*x+c)*x + d); res < bestRes {
			best, bestRes = x, res
		}
	}
	return best
}
