package physics

import (
	"math"

	"github.com/lixenwraith/collisions/solver"
	"github.com/lixenwraith/collisions/vmath"
)

var nan = math.NaN()

// BallBall returns the delay until two balls at relative position dp and relative velocity dv
// touch with combined radius r; gravity cancels in the relative frame
func BallBall(dp, dv vmath.Vec, r float64) float64 {
	// Receding or resting pairs never meet
	if dp.Dot(dv) >= 0 {
		return nan
	}
	return solver.FirstQuadratic(dv.SquareLength(), 2*dv.Dot(dp), dp.SquareLength()-r*r)
}

// BallVertex returns the delay until a ball with offset dp from a fixed vertex touches it
// Quartic under gravity, quadratic otherwise; only an approaching contact counts
func BallVertex(dp, v, g vmath.Vec, r float64) float64 {
	if g == (vmath.Vec{}) {
		if dp.Dot(v) >= 0 {
			return nan
		}
		return solver.FirstQuadratic(v.SquareLength(), 2*v.Dot(dp), dp.SquareLength()-r*r)
	}
	return solver.FirstQuartic(
		g.SquareLength()/4,
		g.Dot(v),
		v.SquareLength()+g.Dot(dp),
		2*v.Dot(dp),
		dp.SquareLength()-r*r,
	)
}

// BallSegment returns the delay until a ball touches the finite segment
// The signed distance det(p - P1, V) is linear in time when gravity is parallel to the segment, quadratic otherwise
func BallSegment(p, v, g vmath.Vec, r float64, s vmath.Segment) float64 {
	length := s.V.Length()
	if length == 0 {
		return nan
	}

	det := p.Sub(s.P1).Det(s.V)
	detVel := v.Det(s.V)
	detGrav := g.Det(s.V) / 2

	// Distance to contact rather than to the line
	var dt float64
	if det > 0 {
		dt = Crossing(detGrav, detVel, det-r*length, false)
	} else {
		dt = Crossing(detGrav, detVel, det+r*length, true)
	}
	if math.IsNaN(dt) {
		return nan
	}

	if !s.Face(PositionAt(p, v, g, dt)) {
		return nan
	}
	return dt
}

// BallPiston returns the delay until a ball at height y meets a piston spanning [py, py+thickness]
// The piston moves at constant speed pv; only the ball feels gravity gy
func BallPiston(y, vy, gy, r, py, pv, thickness float64) float64 {
	// f(t) = ball edge - piston edge
	a, b := gy/2, vy-pv
	if y < py {
		return Crossing(a, b, y+r-py, true)
	}
	return Crossing(a, b, y-r-(py+thickness), false)
}

// PistonPiston returns the delay until two pistons touch; both move at constant speed
func PistonPiston(y1, v1, th1, y2, v2, th2 float64) float64 {
	if y1 > y2 {
		y1, v1, th1, y2, v2, th2 = y2, v2, th2, y1, v1, th1
	}
	closing := v1 - v2
	if closing <= 0 {
		return nan
	}
	gap := y2 - (y1 + th1)
	return gap / closing
}

// PistonVertex returns the delay until a piston edge reaches the height of a fixed vertex
// The piston is horizontally unbounded so only heights matter
func PistonVertex(y, v, thickness, vy float64) float64 {
	switch {
	case y+thickness <= vy && v > 0:
		return (vy - y - thickness) / v
	case y >= vy && v < 0:
		return (vy - y) / v
	default:
		return nan
	}
}
