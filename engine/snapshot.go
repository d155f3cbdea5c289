package engine

import (
	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/vmath"
)

// ParticleView is the drawable state of a particle
type ParticleView struct {
	Pos    vmath.Vec
	Radius float64
	Color  core.RGB
	Pop    int
}

// PistonView is the drawable state of a piston
type PistonView struct {
	Y, Thickness float64
	Color        core.RGB
}

// Obstacle is a drawable static polygon
type Obstacle struct {
	Polygon vmath.Polygon
	Color   core.RGB
}

// Snapshot is a copy of the drawable state, safe to hand to another goroutine
type Snapshot struct {
	Time      core.Time
	Particles []ParticleView
	Pistons   []PistonView
	Obstacles []Obstacle
	Contour   Obstacle
	Counters  Counters
	Queued    int
}

// Snapshot copies the drawable state into dst, reusing its buffers, and returns it
// Polygons are shared with the scenario, which is never modified
func (s *State) Snapshot(dst *Snapshot) *Snapshot {
	if dst == nil {
		dst = &Snapshot{}
	}
	dst.Time = s.now
	dst.Counters = s.counters
	dst.Queued = s.queue.Len()

	dst.Particles = dst.Particles[:0]
	for i := range s.particles {
		p := &s.particles[i]
		dst.Particles = append(dst.Particles, ParticleView{Pos: p.Pos, Radius: p.Radius, Color: p.Color, Pop: p.pop})
	}
	dst.Pistons = dst.Pistons[:0]
	for i := range s.pistons {
		p := &s.pistons[i]
		dst.Pistons = append(dst.Pistons, PistonView{Y: p.Pos.Y, Thickness: p.Thickness, Color: p.Color})
	}
	dst.Obstacles = dst.Obstacles[:0]
	for _, o := range s.cfg.Obstacles {
		dst.Obstacles = append(dst.Obstacles, Obstacle{Polygon: o.Polygon, Color: o.Color})
	}
	dst.Contour = Obstacle{Polygon: s.cfg.Contour.Polygon, Color: s.cfg.Contour.Color}
	return dst
}
