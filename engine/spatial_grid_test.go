package engine

import (
	"testing"

	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/vmath"
)

// TestSpatialGrid_Particles verifies add, lookup and swap-remove
func TestSpatialGrid_Particles(t *testing.T) {
	g := NewSpatialGrid(2)
	c := g.CellOf(vmath.V(-0.5, 3))
	if c != (vmath.Cell{X: -1, Y: 1}) {
		t.Fatalf("Expected cell {-1 1}, got %v", c)
	}

	g.AddParticle(1, c)
	g.AddParticle(2, c)
	g.AddParticle(3, c)
	if !g.RemoveParticle(1, c) {
		t.Fatal("Expected removal of id 1")
	}
	if g.RemoveParticle(1, c) {
		t.Error("Expected second removal to fail")
	}
	if got := g.ParticlesAt(c); len(got) != 2 {
		t.Errorf("Expected 2 particles, got %v", got)
	}

	g.AddParticle(4, vmath.Cell{X: -3, Y: 1})
	var order []core.ID
	g.RowParticles(1, func(id core.ID) { order = append(order, id) })
	if len(order) != 3 || order[0] != 4 {
		t.Errorf("Expected column order starting with 4, got %v", order)
	}
}

// TestSpatialGrid_Segments verifies a segment lands once in every cell it crosses
func TestSpatialGrid_Segments(t *testing.T) {
	tests := []struct {
		name  string
		seg   vmath.Segment
		cells []vmath.Cell
	}{
		{"horizontal", vmath.NewSegment(vmath.V(0.5, 0.5), vmath.V(4.5, 0.5)), []vmath.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}},
		{"single cell", vmath.NewSegment(vmath.V(0.2, 0.2), vmath.V(0.8, 0.9)), []vmath.Cell{{X: 0, Y: 0}}},
		{"vertical", vmath.NewSegment(vmath.V(3, 1), vmath.V(3, 5)), []vmath.Cell{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewSpatialGrid(2)
			g.AddSegment(tt.seg)
			g.AddSegment(tt.seg)
			for _, c := range tt.cells {
				if got := g.SegmentsAt(c); len(got) != 1 {
					t.Errorf("Expected one segment in %v, got %d", c, len(got))
				}
			}
		})
	}
}

// TestSpatialGrid_Pistons verifies row registration is deduplicated
func TestSpatialGrid_Pistons(t *testing.T) {
	g := NewSpatialGrid(1)
	g.AddPiston(0, 5)
	g.AddPiston(0, 5)
	g.AddPiston(1, 5)
	if got := g.PistonsAt(5); len(got) != 2 {
		t.Fatalf("Expected 2 pistons, got %v", got)
	}
	g.RemovePiston(0, 5)
	if got := g.PistonsAt(5); len(got) != 1 || got[0] != 1 {
		t.Errorf("Expected only piston 1, got %v", got)
	}
	if g.RowOf(-0.1) != -1 {
		t.Errorf("Expected row -1 for negative height, got %d", g.RowOf(-0.1))
	}
}
