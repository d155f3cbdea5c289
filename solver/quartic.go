package solver

import (
	"math"
	"math/cmplx"
)

// imagTolerance bounds the imaginary part, relative to the modulus, under which a root counts as real
const imagTolerance = 1e-9

// Quartic returns the four complex roots of a t⁴ + b t³ + c t² + d t + e by Ferrari's method
// Lower-degree roots are returned when a is zero, unused slots are NaN
func Quartic(a, b, c, d, e float64) [4]complex128 {
	if a == 0 {
		r := Cubic(b, c, d, e)
		return [4]complex128{r[0], r[1], r[2], cmplx.NaN()}
	}
	b, c, d, e = b/a, c/a, d/a, e/a

	// Depressed quartic y⁴ + p y² + q y + r with t = y + s
	s := -b / 4
	p := c - 3*b*b/8
	q := b*b*b/8 - b*c/2 + d
	r := -3*b*b*b*b/256 + c*b*b/16 - b*d/4 + e

	var roots [4]complex128
	y1 := RealCubic(8, -4*p, -8*r, 4*r*p-q*q)
	rac1 := cmplx.Sqrt(complex(2*y1-p, 0))

	if cmplx.Abs(rac1) < 1e-12 {
		// Biquadratic u² + p u + r with u = y²
		u0, u1 := Quadratic(1, complex(p, 0), complex(r, 0))
		w0, w1 := cmplx.Sqrt(u0), cmplx.Sqrt(u1)
		roots = [4]complex128{w0, -w0, w1, -w1}
	} else {
		rac2p := cmplx.Sqrt(complex(-2*y1-p, 0) + complex(2*q, 0)/rac1)
		rac2n := cmplx.Sqrt(complex(-2*y1-p, 0) - complex(2*q, 0)/rac1)
		roots = [4]complex128{
			(rac1 + rac2n) / 2,
			(rac1 - rac2n) / 2,
			(rac2p - rac1) / 2,
			-(rac2p + rac1) / 2,
		}
	}

	cs := complex(s, 0)
	for i := range roots {
		roots[i] = polishComplex(roots[i]+cs, 1, b, c, d, e)
	}
	return roots
}

// FirstQuartic returns the smallest non-negative real root at which the quartic is not increasing
// With the quartic as a squared distance this is the first contact, not a separation
func FirstQuartic(a, b, c, d, e float64) float64 {
	return FirstQuarticFunc(a, b, c, d, e, func(t float64) bool {
		return ((4*a*t+3*b)*t+2*c)*t+d <= 0
	})
}

// FirstQuarticFunc returns the smallest non-negative real root accepted by the filter, NaN if none
func FirstQuarticFunc(a, b, c, d, e float64, accept func(t float64) bool) float64 {
	best := math.NaN()
	for _, z := range Quartic(a, b, c, d, e) {
		if cmplx.IsNaN(z) || !isReal(z) {
			continue
		}
		t := real(z)
		if t < 0 || (!math.IsNaN(best) && t >= best) {
			continue
		}
		if accept == nil || accept(t) {
			best = t
		}
	}
	return best
}

func isReal(z complex128) bool {
	return math.Abs(imag(z)) <= imagTolerance*(1+cmplx.Abs(z))
}

// polishComplex refines a root of the monic-scaled quartic with Newton steps, keeping the best
func polishComplex(z complex128, a, b, c, d, e float64) complex128 {
	ca, cb, cc, cd, ce := complex(a, 0), complex(b, 0), complex(c, 0), complex(d, 0), complex(e, 0)
	eval := func(z complex128) (complex128, complex128) {
		f := (((ca*z+cb)*z+cc)*z+cd)*z + ce
		df := ((4*ca*z+3*cb)*z+2*cc)*z + cd
		return f, df
	}

	best := z
	f, _ := eval(z)
	bestRes := cmplx.Abs(f)
	for range 3 {
		f, df := eval(z)
		if df == 0 {
			break
		}
		z -= f / df
		if res, _ := eval(z); cmplx.Abs(res) < bestRes {
			best, bestRes = z, cmplx.Abs(res)
		}
	}
	return best
}
