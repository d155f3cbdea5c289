package vmath

import "math"

// Polygon is a closed polygon; the last vertex connects back to the first
type Polygon []Vec

// Segments returns the closed edge list
func (p Polygon) Segments() []Segment {
	if len(p) < 2 {
		return nil
	}
	segs := make([]Segment, len(p))
	for i := range p {
		segs[i] = NewSegment(p[i], p[(i+1)%len(p)])
	}
	return segs
}

// Inside reports whether pt lies within the polygon by ray crossing
func (p Polygon) Inside(pt Vec) bool {
	inside := false
	for i, j := 0, len(p)-1; i < len(p); j, i = i, i+1 {
		a, b := p[i], p[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := a.X + (pt.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Intersects reports whether a circle touches any edge or vertex
func (p Polygon) Intersects(center Vec, r float64) bool {
	for _, v := range p {
		if v.Sub(center).SquareLength() <= r*r {
			return true
		}
	}
	for _, s := range p.Segments() {
		if s.Face(center) && math.Abs(center.Sub(s.P1).Det(s.V)) <= r*s.V.Length() {
			return true
		}
	}
	return false
}

// Area returns the enclosed surface (shoelace, unsigned)
func (p Polygon) Area() float64 {
	sum := 0.0
	for i := range p {
		sum += p[i].Det(p[(i+1)%len(p)])
	}
	return math.Abs(sum) / 2
}

// Bounds returns the bounding box corners
func (p Polygon) Bounds() (lo, hi Vec) {
	if len(p) == 0 {
		return Vec{}, Vec{}
	}
	lo, hi = p[0], p[0]
	for _, v := range p[1:] {
		lo = lo.Min(v)
		hi = hi.Max(v)
	}
	return lo, hi
}

// Rect returns the axis-aligned rectangle polygon, counter-clockwise
func Rect(x0, y0, x1, y1 float64) Polygon {
	return Polygon{V(x0, y0), V(x1, y0), V(x1, y1), V(x0, y1)}
}
