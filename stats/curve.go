package stats

import "math"

// Point is one timed sample
type Point struct {
	T, V float64
}

// Curve is a time series trimmed to a lifespan behind its newest sample
type Curve struct {
	Name     string
	lifespan float64
	points   []Point
}

// NewCurve creates a curve keeping lifespan time units; lifespan <= 0 keeps everything
func NewCurve(name string, lifespan float64) *Curve {
	return &Curve{Name: name, lifespan: lifespan}
}

// Push appends a sample; NaN values are dropped
func (c *Curve) Push(t, v float64) {
	if math.IsNaN(v) {
		return
	}
	c.points = append(c.points, Point{T: t, V: v})
	c.trim(t)
}

func (c *Curve) trim(now float64) {
	if c.lifespan <= 0 {
		return
	}
	cut := 0
	for cut < len(c.points) && c.points[cut].T < now-c.lifespan {
		cut++
	}
	if cut > 0 {
		c.points = append(c.points[:0], c.points[cut:]...)
	}
}

// Len returns the number of retained samples
func (c *Curve) Len() int {
	return len(c.points)
}

// Points returns the retained samples, oldest first; callers must not modify
func (c *Curve) Points() []Point {
	return c.points
}

// Values returns the retained sample values, oldest first
func (c *Curve) Values() []float64 {
	vals := make([]float64, len(c.points))
	for i, p := range c.points {
		vals[i] = p.V
	}
	return vals
}

// Last returns the newest sample
func (c *Curve) Last() (Point, bool) {
	if len(c.points) == 0 {
		return Point{}, false
	}
	return c.points[len(c.points)-1], true
}

// Bounds returns the time and value extents
func (c *Curve) Bounds() (minT, maxT, minV, maxV float64) {
	if len(c.points) == 0 {
		return 0, 0, 0, 0
	}
	minT, maxT = c.points[0].T, c.points[len(c.points)-1].T
	minV, maxV = c.points[0].V, c.points[0].V
	for _, p := range c.points[1:] {
		minV = min(minV, p.V)
		maxV = max(maxV, p.V)
	}
	return minT, maxT, minV, maxV
}

func nan() float64 {
	return math.NaN()
}

// Clear drops all samples
func (c *Curve) Clear() {
	c.points = c.points[:0]
}
