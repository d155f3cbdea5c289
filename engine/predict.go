package engine

import (
	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/physics"
	"github.com/lixenwraith/collisions/vmath"
)

// predict returns the absolute time of c, or Never
// A contact already performed at that exact instant is rejected
func (s *State) predict(c Collision) core.Time {
	s.counters.Predictions++
	var dt float64
	switch c.Kind {
	case CollisionMobiles:
		s.counters.PairTests++
		dt = s.pairDelay(c.A, c.B)
	case CollisionVertex:
		dt = s.vertexDelay(c.A, c.Vertex)
	case CollisionSegment:
		if s.isPiston(c.A) {
			return core.Never
		}
		p := s.particle(c.A)
		dt = physics.BallSegment(p.Pos, p.Vel, s.gravity, p.Radius, c.Segment)
	case CollisionArea:
		dt = s.areaDelay(c.A)
	}

	t := s.now.After(dt)
	if !c.Real() || t.IsNever() {
		return t
	}
	if s.mobile(c.A).repeats(c, t) && (c.Kind != CollisionMobiles || s.mobile(c.B).repeats(c, t)) {
		s.logger.Debug("repeated collision rejected", "collision", c, "t", t)
		return core.Never
	}
	return t
}

// pairDelay dispatches on the kinds of a < b; pistons have the lowest ids
func (s *State) pairDelay(a, b core.ID) float64 {
	switch {
	case s.isPiston(a) && s.isPiston(b):
		p, q := s.piston(a), s.piston(b)
		return physics.PistonPiston(p.Pos.Y, p.Vel.Y, p.Thickness, q.Pos.Y, q.Vel.Y, q.Thickness)
	case s.isPiston(a):
		p, b := s.piston(a), s.particle(b)
		return physics.BallPiston(b.Pos.Y, b.Vel.Y, s.gravity.Y, b.Radius, p.Pos.Y, p.Vel.Y, p.Thickness)
	default:
		p, q := s.particle(a), s.particle(b)
		return physics.BallBall(q.Pos.Sub(p.Pos), q.Vel.Sub(p.Vel), p.Radius+q.Radius)
	}
}

func (s *State) vertexDelay(id core.ID, v vmath.Vec) float64 {
	if s.isPiston(id) {
		p := s.piston(id)
		return physics.PistonVertex(p.Pos.Y, p.Vel.Y, p.Thickness, v.Y)
	}
	p := s.particle(id)
	return physics.BallVertex(p.Pos.Sub(v), p.Vel, s.gravity, p.Radius)
}

// areaDelay is the time until a particle leaves its cell, or a piston edge leaves its row
func (s *State) areaDelay(id core.ID) float64 {
	size := s.grid.Size()
	if s.isPiston(id) {
		p := s.piston(id)
		top := physics.AxisCrossing(p.Pos.Y, p.Vel.Y, 0, float64(p.rows[0])*size, float64(p.rows[0]+1)*size)
		bottom := physics.AxisCrossing(p.Pos.Y+p.Thickness, p.Vel.Y, 0, float64(p.rows[1])*size, float64(p.rows[1]+1)*size)
		return physics.MinTime(top, bottom)
	}
	p := s.particle(id)
	c := p.cell
	x := physics.AxisCrossing(p.Pos.X, p.Vel.X, s.gravity.X, float64(c.X)*size, float64(c.X+1)*size)
	y := physics.AxisCrossing(p.Pos.Y, p.Vel.Y, s.gravity.Y, float64(c.Y)*size, float64(c.Y+1)*size)
	return physics.MinTime(x, y)
}
