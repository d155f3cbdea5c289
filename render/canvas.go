// Package render draws simulation snapshots in a terminal and formats run reports
package render

import (
	"math"

	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/engine"
	"github.com/lixenwraith/collisions/vmath"
)

// Cell is one terminal character of a rasterized frame
type Cell struct {
	Rune  rune
	Color core.RGB
}

// Canvas maps world coordinates onto a grid of terminal cells
// Terminal cells are about twice as tall as wide, so one cell spans half as much world width as height
type Canvas struct {
	W, H  int
	Cells []Cell

	origin vmath.Vec
	scale  float64 // Cells per world unit horizontally
}

// NewCanvas creates a canvas of w x h cells
func NewCanvas(w, h int) *Canvas {
	return &Canvas{W: w, H: h, Cells: make([]Cell, w*h)}
}

// Fit frames the world rectangle [lo, hi] inside the canvas, keeping proportions
func (c *Canvas) Fit(lo, hi vmath.Vec) {
	width, height := hi.X-lo.X, hi.Y-lo.Y
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	c.origin = lo
	c.scale = min(float64(c.W)/width, 2*float64(c.H)/height)
}

// ToCell returns the cell of a world point
func (c *Canvas) ToCell(p vmath.Vec) (x, y int) {
	x = int(math.Floor((p.X - c.origin.X) * c.scale))
	y = int(math.Floor((p.Y - c.origin.Y) * c.scale / 2))
	return x, y
}

// Set writes a cell when it lies inside the canvas
func (c *Canvas) Set(x, y int, r rune, color core.RGB) {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return
	}
	c.Cells[y*c.W+x] = Cell{Rune: r, Color: color}
}

// At returns the cell at x, y
func (c *Canvas) At(x, y int) Cell {
	return c.Cells[y*c.W+x]
}

// Clear blanks every cell
func (c *Canvas) Clear() {
	clear(c.Cells)
}

// Draw rasterizes a snapshot: obstacle outlines, then pistons, then particles on top
func (c *Canvas) Draw(s *engine.Snapshot) {
	c.Clear()
	c.polygon(s.Contour)
	for _, o := range s.Obstacles {
		c.polygon(o)
	}
	for _, p := range s.Pistons {
		_, top := c.ToCell(vmath.V(0, p.Y))
		_, bottom := c.ToCell(vmath.V(0, p.Y+p.Thickness))
		for y := top; y <= bottom; y++ {
			for x := range c.W {
				c.Set(x, y, '▀', p.Color)
			}
		}
	}
	for _, p := range s.Particles {
		x, y := c.ToCell(p.Pos)
		c.Set(x, y, '●', p.Color)
	}
}

// polygon samples each edge at half-cell steps
func (c *Canvas) polygon(o engine.Obstacle) {
	for _, seg := range o.Polygon.Segments() {
		n := int(math.Ceil(seg.V.Length()*c.scale*2)) + 1
		for i := 0; i <= n; i++ {
			p := seg.P1.Add(seg.V.Scale(float64(i) / float64(n)))
			x, y := c.ToCell(p)
			c.Set(x, y, '·', o.Color)
		}
	}
}
