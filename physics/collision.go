package physics

import "github.com/lixenwraith/collisions/vmath"

// Approaching reports whether two bodies at relative position dp (b - a) and relative velocity dv (b - a) close in
func Approaching(dp, dv vmath.Vec) bool {
	return dp.Dot(dv) < 0
}

// Elastic exchanges the normal velocity components of two masses along the line of centers n
// Tangential components are unchanged; momentum and kinetic energy are preserved
func Elastic(m1, m2 float64, v1, v2, n vmath.Vec) (vmath.Vec, vmath.Vec) {
	n = vmath.Normalize(n)
	if n == (vmath.Vec{}) {
		return v1, v2
	}
	u1, u2 := Elastic1D(m1, m2, v1.Dot(n), v2.Dot(n))
	v1 = v1.Add(n.Scale(u1 - v1.Dot(n)))
	v2 = v2.Add(n.Scale(u2 - v2.Dot(n)))
	return v1, v2
}

// Elastic1D returns post-collision speeds of a one-dimensional elastic exchange
func Elastic1D(m1, m2, v1, v2 float64) (float64, float64) {
	total := m1 + m2
	u1 := ((m1-m2)*v1 + 2*m2*v2) / total
	u2 := ((m2-m1)*v2 + 2*m1*v1) / total
	return u1, u2
}

// NormalEnergy is the kinetic energy of the normal relative motion in the center-of-mass frame
func NormalEnergy(m1, m2 float64, dp, dv vmath.Vec) float64 {
	n := vmath.Normalize(dp)
	vn := dv.Dot(n)
	mu := m1 * m2 / (m1 + m2)
	return mu * vn * vn / 2
}

// ReflectVertex bounces v off a vertex touched from position p
// Returns false and leaves v unchanged when the body moves away from the vertex
func ReflectVertex(p, v, vertex vmath.Vec) (vmath.Vec, bool) {
	n := vertex.Sub(p)
	if n.Dot(v) <= 0 {
		return v, false
	}
	return vmath.Reflect(v, n), true
}

// ReflectSegment bounces v off the segment's supporting line
// Returns false and leaves v unchanged when the body moves away from the segment
func ReflectSegment(p, v vmath.Vec, s vmath.Segment) (vmath.Vec, bool) {
	if s.V.Det(p.Sub(s.P1))*s.V.Det(v) >= 0 {
		return v, false
	}
	return vmath.Reflect(v, s.V.Perp()), true
}

// KineticEnergy is ½ m |v|²
func KineticEnergy(m float64, v vmath.Vec) float64 {
	return m * v.SquareLength() / 2
}
