// Package physics holds the closed-form trajectory, contact-time and impulse rules
// Functions are pure; the engine owns all state
package physics

import (
	"github.com/lixenwraith/collisions/solver"
	"github.com/lixenwraith/collisions/vmath"
)

// Integrate moves a body under constant acceleration g for dt: p += v dt + g dt²/2; v += g dt
func Integrate(p, v, g vmath.Vec, dt float64) (vmath.Vec, vmath.Vec) {
	if dt == 0 {
		return p, v
	}
	p = p.Add(v.Scale(dt)).Add(g.Scale(dt * dt / 2))
	v = v.Add(g.Scale(dt))
	return p, v
}

// PositionAt evaluates the trajectory without changing velocity
func PositionAt(p, v, g vmath.Vec, dt float64) vmath.Vec {
	return p.Add(v.Scale(dt)).Add(g.Scale(dt * dt / 2))
}

// Crossing returns the first dt >= 0 at which f(t) = a t² + b t + c reaches zero moving in the given direction
// rising selects an increasing f at the root; NaN when no such root exists
func Crossing(a, b, c float64, rising bool) float64 {
	lo := solver.FirstQuadratic(a, b, c)
	hi := solver.SecondQuadratic(a, b, c)
	for _, t := range [2]float64{lo, hi} {
		if !(t >= 0) {
			continue
		}
		slope := 2*a*t + b
		if (rising && slope >= 0) || (!rising && slope <= 0) {
			return t
		}
	}
	return nan
}

// AxisCrossing returns the first dt > 0 at which a coordinate with velocity v and acceleration g
// leaves [lo, hi] through either bound
func AxisCrossing(p, v, g, lo, hi float64) float64 {
	down := Crossing(g/2, v, p-lo, false)
	up := Crossing(g/2, v, p-hi, true)
	return MinTime(down, up)
}

// MinTime returns the smaller of two candidate delays, ignoring NaN
func MinTime(a, b float64) float64 {
	switch {
	case a != a:
		return b
	case b != b:
		return a
	case a < b:
		return a
	default:
		return b
	}
}
