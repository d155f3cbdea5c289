package render

import (
	"testing"

	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/engine"
	"github.com/lixenwraith/collisions/vmath"
)

// TestCanvas_Fit verifies the aspect-corrected world to cell mapping
func TestCanvas_Fit(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		point vmath.Vec
		x, y  int
	}{
		{"origin", 80, 20, vmath.V(0, 0), 0, 0},
		{"far corner", 80, 20, vmath.V(79.9, 39.9), 79, 19},
		{"tall canvas limited by width", 40, 100, vmath.V(40, 20), 20, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(tt.w, tt.h)
			c.Fit(vmath.V(0, 0), vmath.V(80, 40))
			if x, y := c.ToCell(tt.point); x != tt.x || y != tt.y {
				t.Errorf("Expected cell (%d,%d), got (%d,%d)", tt.x, tt.y, x, y)
			}
		})
	}
}

// TestCanvas_Draw verifies layering of particles over outlines
func TestCanvas_Draw(t *testing.T) {
	c := NewCanvas(20, 10)
	c.Fit(vmath.V(0, 0), vmath.V(20, 20))
	white := core.RGBWhite
	red := core.RGB{R: 255}
	snap := &engine.Snapshot{
		Contour:   engine.Obstacle{Polygon: vmath.Rect(0, 0, 19.9, 19.9), Color: white},
		Particles: []engine.ParticleView{{Pos: vmath.V(5.5, 5.5), Radius: 0.5, Color: red}},
		Pistons:   []engine.PistonView{{Y: 10, Thickness: 0.5, Color: white}},
	}
	c.Draw(snap)

	if got := c.At(5, 2); got.Rune != '●' || got.Color != red {
		t.Errorf("Expected particle at (5,2), got %q", got.Rune)
	}
	if got := c.At(0, 0); got.Rune != '·' {
		t.Errorf("Expected contour corner, got %q", got.Rune)
	}
	if got := c.At(10, 5); got.Rune != '▀' {
		t.Errorf("Expected piston row, got %q", got.Rune)
	}
	if got := c.At(10, 8); got.Rune != 0 {
		t.Errorf("Expected empty interior, got %q", got.Rune)
	}
}
