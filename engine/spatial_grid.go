package engine

import (
	"slices"

	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/vmath"
)

// gridRow is one horizontal band of cells, keyed by column
type gridRow struct {
	particles map[int][]core.ID
	vertices  map[int][]vmath.Vec
	segments  map[int][]vmath.Segment // Unique per cell
	pistons   []core.ID
}

func newGridRow() *gridRow {
	return &gridRow{
		particles: make(map[int][]core.ID),
		vertices:  make(map[int][]vmath.Vec),
		segments:  make(map[int][]vmath.Segment),
	}
}

// SpatialGrid is a sparse square-cell index over particles, obstacle features and piston rows
// Rows and columns are floor(coordinate / size); the plane is unbounded
type SpatialGrid struct {
	size float64
	rows map[int]*gridRow
}

// NewSpatialGrid creates an empty grid with cells of the given size
func NewSpatialGrid(size float64) *SpatialGrid {
	return &SpatialGrid{size: size, rows: make(map[int]*gridRow)}
}

// Size returns the cell edge length
func (g *SpatialGrid) Size() float64 {
	return g.size
}

// CellOf returns the cell containing p
func (g *SpatialGrid) CellOf(p vmath.Vec) vmath.Cell {
	return vmath.CellOf(p, g.size)
}

// RowOf returns the row containing height y
func (g *SpatialGrid) RowOf(y float64) int {
	return vmath.CellOf(vmath.V(0, y), g.size).Y
}

// row returns the band at y; absent rows read as nil unless create is set
func (g *SpatialGrid) row(y int, create bool) *gridRow {
	r := g.rows[y]
	if r == nil && create {
		r = newGridRow()
		g.rows[y] = r
	}
	return r
}

// AddParticle registers id in cell c
func (g *SpatialGrid) AddParticle(id core.ID, c vmath.Cell) {
	r := g.row(c.Y, true)
	r.particles[c.X] = append(r.particles[c.X], id)
}

// RemoveParticle unregisters id from cell c using swap-remove
func (g *SpatialGrid) RemoveParticle(id core.ID, c vmath.Cell) bool {
	r := g.row(c.Y, false)
	if r == nil {
		return false
	}
	list := r.particles[c.X]
	for i, e := range list {
		if e != id {
			continue
		}
		last := len(list) - 1
		list[i] = list[last]
		list = list[:last]
		if len(list) == 0 {
			delete(r.particles, c.X)
		} else {
			r.particles[c.X] = list
		}
		return true
	}
	return false
}

// ParticlesAt returns the particles registered in c
// INTERNAL USE ONLY - the slice is owned by the grid
func (g *SpatialGrid) ParticlesAt(c vmath.Cell) []core.ID {
	if r := g.row(c.Y, false); r != nil {
		return r.particles[c.X]
	}
	return nil
}

// RowParticles visits every particle of row y in column order
func (g *SpatialGrid) RowParticles(y int, fn func(id core.ID)) {
	r := g.row(y, false)
	if r == nil {
		return
	}
	for _, x := range sortedColumns(r.particles) {
		for _, id := range r.particles[x] {
			fn(id)
		}
	}
}

// AddVertex registers an obstacle vertex in its cell
func (g *SpatialGrid) AddVertex(v vmath.Vec) {
	c := g.CellOf(v)
	r := g.row(c.Y, true)
	r.vertices[c.X] = append(r.vertices[c.X], v)
}

// VerticesAt returns the obstacle vertices in c
func (g *SpatialGrid) VerticesAt(c vmath.Cell) []vmath.Vec {
	if r := g.row(c.Y, false); r != nil {
		return r.vertices[c.X]
	}
	return nil
}

// RowVertices visits every vertex of row y in column order
func (g *SpatialGrid) RowVertices(y int, fn func(v vmath.Vec)) {
	r := g.row(y, false)
	if r == nil {
		return
	}
	for _, x := range sortedColumns(r.vertices) {
		for _, v := range r.vertices[x] {
			fn(v)
		}
	}
}

// AddSegment registers s in every cell along its path, once per cell
func (g *SpatialGrid) AddSegment(s vmath.Segment) {
	for _, c := range s.Cells(g.size) {
		r := g.row(c.Y, true)
		if !slices.Contains(r.segments[c.X], s) {
			r.segments[c.X] = append(r.segments[c.X], s)
		}
	}
}

// SegmentsAt returns the segments crossing c
func (g *SpatialGrid) SegmentsAt(c vmath.Cell) []vmath.Segment {
	if r := g.row(c.Y, false); r != nil {
		return r.segments[c.X]
	}
	return nil
}

// AddPiston registers a piston in row y
func (g *SpatialGrid) AddPiston(id core.ID, y int) {
	r := g.row(y, true)
	if !slices.Contains(r.pistons, id) {
		r.pistons = append(r.pistons, id)
	}
}

// RemovePiston unregisters a piston from row y
func (g *SpatialGrid) RemovePiston(id core.ID, y int) {
	if r := g.row(y, false); r != nil {
		if i := slices.Index(r.pistons, id); i >= 0 {
			r.pistons = slices.Delete(r.pistons, i, i+1)
		}
	}
}

// PistonsAt returns the pistons registered in row y
func (g *SpatialGrid) PistonsAt(y int) []core.ID {
	if r := g.row(y, false); r != nil {
		return r.pistons
	}
	return nil
}

// EachParticle visits every particle registration; used by consistency checks
func (g *SpatialGrid) EachParticle(fn func(id core.ID, c vmath.Cell)) {
	for y, r := range g.rows {
		for x, list := range r.particles {
			for _, id := range list {
				fn(id, vmath.Cell{X: x, Y: y})
			}
		}
	}
}

// EachPiston visits every piston registration
func (g *SpatialGrid) EachPiston(fn func(id core.ID, row int)) {
	for y, r := range g.rows {
		for _, id := range r.pistons {
			fn(id, y)
		}
	}
}

// Clear removes everything
func (g *SpatialGrid) Clear() {
	clear(g.rows)
}

func sortedColumns[T any](m map[int][]T) []int {
	cols := make([]int, 0, len(m))
	for x := range m {
		cols = append(cols, x)
	}
	slices.Sort(cols)
	return cols
}
