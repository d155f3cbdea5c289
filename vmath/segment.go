package vmath

import "math"

// Segment is the finite segment [P1, P1+V]
// Comparable; obstacles use it as a set key
type Segment struct {
	P1 Vec
	V  Vec
}

// NewSegment builds the segment from a to b
func NewSegment(a, b Vec) Segment {
	return Segment{P1: a, V: b.Sub(a)}
}

// P2 returns the end point
func (s Segment) P2() Vec {
	return s.P1.Add(s.V)
}

// Face reports whether p projects inside the segment
func (s Segment) Face(p Vec) bool {
	d := s.V.Dot(p.Sub(s.P1))
	return d >= 0 && d <= s.V.SquareLength()
}

// Distance is the unsigned distance from p to the supporting line
func (s Segment) Distance(p Vec) float64 {
	l := s.V.Length()
	if l == 0 {
		return p.Sub(s.P1).Length()
	}
	return math.Abs(p.Sub(s.P1).Det(s.V)) / l
}

// YAtX returns the line's y at abscissa x; NaN for vertical segments
func (s Segment) YAtX(x float64) float64 {
	if s.V.X == 0 {
		return math.NaN()
	}
	return s.P1.Y + (x-s.P1.X)*s.V.Y/s.V.X
}

// XAtY returns the line's x at ordinate y; NaN for horizontal segments
func (s Segment) XAtY(y float64) float64 {
	if s.V.Y == 0 {
		return math.NaN()
	}
	return s.P1.X + (y-s.P1.Y)*s.V.X/s.V.Y
}

// Cells returns every grid cell of the given size the segment passes through, in travel order
func (s Segment) Cells(size float64) []Cell {
	a, b := s.P1, s.P2()
	cur, end := CellOf(a, size), CellOf(b, size)
	cells := []Cell{cur}
	if cur == end {
		return cells
	}

	// Grid traversal in the manner of Amanatides and Woo
	stepX, stepY := 0, 0
	tMaxX, tMaxY := math.Inf(1), math.Inf(1)
	tDeltaX, tDeltaY := math.Inf(1), math.Inf(1)
	if s.V.X > 0 {
		stepX = 1
		tMaxX = (float64(cur.X+1)*size - a.X) / s.V.X
		tDeltaX = size / s.V.X
	} else if s.V.X < 0 {
		stepX = -1
		tMaxX = (float64(cur.X)*size - a.X) / s.V.X
		tDeltaX = -size / s.V.X
	}
	if s.V.Y > 0 {
		stepY = 1
		tMaxY = (float64(cur.Y+1)*size - a.Y) / s.V.Y
		tDeltaY = size / s.V.Y
	} else if s.V.Y < 0 {
		stepY = -1
		tMaxY = (float64(cur.Y)*size - a.Y) / s.V.Y
		tDeltaY = -size / s.V.Y
	}

	limit := abs(end.X-cur.X) + abs(end.Y-cur.Y)
	for i := 0; i < limit && cur != end; i++ {
		if tMaxX < tMaxY {
			cur.X += stepX
			tMaxX += tDeltaX
		} else {
			cur.Y += stepY
			tMaxY += tDeltaY
		}
		cells = append(cells, cur)
	}
	if cur != end {
		cells = append(cells, end)
	}
	return cells
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
