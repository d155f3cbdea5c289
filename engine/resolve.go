package engine

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lixenwraith/collisions/config"
	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/logging"
	"github.com/lixenwraith/collisions/parameter"
	"github.com/lixenwraith/collisions/physics"
)

// perform applies a popped collision event at now
// Every participant and its attached mobiles are refreshed afterwards
func (s *State) perform(c Collision) {
	switch c.Kind {
	case CollisionMobiles:
		s.collideMobiles(c.A, c.B)
	case CollisionVertex:
		if s.isPiston(c.A) {
			s.pistonVertex(s.piston(c.A), c)
		} else {
			p := s.particle(c.A)
			if v, ok := physics.ReflectVertex(p.Pos, p.Vel, c.Vertex); ok {
				p.Vel = v
				p.markFree(s.now)
			} else {
				s.logger.Debug("receding vertex contact", "collision", c, "t", s.now)
			}
			s.markDirty(&p.Mobile)
		}
	case CollisionSegment:
		p := s.particle(c.A)
		if v, ok := physics.ReflectSegment(p.Pos, p.Vel, c.Segment); ok {
			p.Vel = v
			p.markFree(s.now)
		} else {
			s.logger.Debug("receding segment contact", "collision", c, "t", s.now)
		}
		s.markDirty(&p.Mobile)
	case CollisionArea:
		if s.isPiston(c.A) {
			s.changePistonArea(s.piston(c.A))
		} else {
			s.changeParticleArea(s.particle(c.A))
		}
	}

	if c.Real() {
		s.counters.Collisions++
	} else {
		s.counters.Crossings++
	}
	s.mobile(c.A).setLastCollision(s.now, c)
	if c.Kind == CollisionMobiles {
		s.mobile(c.B).setLastCollision(s.now, c)
	}
}

func (s *State) collideMobiles(a, b core.ID) {
	switch {
	case s.isPiston(a) && s.isPiston(b):
		p, q := s.piston(a), s.piston(b)
		s.exchangeY(&p.Mobile, &q.Mobile, p.Pos.Y+p.Thickness/2, q.Pos.Y+q.Thickness/2)
	case s.isPiston(a):
		p, q := s.piston(a), s.particle(b)
		if s.exchangeY(&p.Mobile, &q.Mobile, p.Pos.Y+p.Thickness/2, q.Pos.Y) {
			q.markFree(s.now)
		}
	default:
		s.collideParticles(s.particle(a), s.particle(b))
	}
}

// exchangeY is the vertical mass-weighted exchange used by pistons
// It reports whether the pair was approaching
func (s *State) exchangeY(m1, m2 *Mobile, y1, y2 float64) bool {
	approaching := (m1.Vel.Y-m2.Vel.Y)*(y1-y2) < 0
	if approaching {
		m1.Vel.Y, m2.Vel.Y = physics.Elastic1D(m1.Mass, m2.Mass, m1.Vel.Y, m2.Vel.Y)
	} else {
		s.logger.Debug("receding piston contact", "a", m1.ID, "b", m2.ID, "t", s.now)
	}
	s.markDirty(m1)
	s.markDirty(m2)
	return approaching
}

func (s *State) collideParticles(p, q *Particle) {
	dp := q.Pos.Sub(p.Pos)
	dv := q.Vel.Sub(p.Vel)
	if !physics.Approaching(dp, dv) {
		s.logger.Debug("receding particles", "a", p.ID, "b", q.ID, "t", s.now)
		s.markDirty(&p.Mobile)
		s.markDirty(&q.Mobile)
		return
	}

	energy := physics.NormalEnergy(p.Mass, q.Mass, dp, dv)
	p.Vel, q.Vel = physics.Elastic(p.Mass, q.Mass, p.Vel, q.Vel, dp)
	p.markFree(s.now)
	q.markFree(s.now)
	s.markDirty(&p.Mobile)
	s.markDirty(&q.Mobile)
	s.react(p, q, energy)
}

// react applies the first reaction rule matching the unordered population pair
// A failed probability or energy check ends the search
func (s *State) react(p, q *Particle, energy float64) {
	for _, r := range s.cfg.Reactions {
		a, b := p, q
		switch {
		case r.A == p.pop && r.B == q.pop:
		case r.A == q.pop && r.B == p.pop:
			a, b = q, p
		default:
			continue
		}

		switch r.Type {
		case config.ReactionProbability:
			trial := distuv.Bernoulli{P: r.Threshold, Src: s.src}
			if trial.Rand() == 0 {
				return
			}
		case config.ReactionEnergy:
			if energy < r.Threshold {
				return
			}
		}

		s.swap(a, r.ToA)
		s.swap(b, r.ToB)
		s.counters.Reactions++
		s.logger.Debug("reaction", "a", a.ID, "b", b.ID, "to_a", r.ToA, "to_b", r.ToB, "t", s.now)
		return
	}
}

// pistonVertex reverses a piston reaching a vertex from either side
// The side is taken from the piston centre; an edge may sit a rounding step past the vertex
func (s *State) pistonVertex(p *Piston, c Collision) {
	above := c.Vertex.Y < p.Pos.Y+p.Thickness/2
	if (above && p.Vel.Y < 0) || (!above && p.Vel.Y > 0) {
		p.Vel.Y = -p.Vel.Y
	} else {
		s.logger.Debug("receding piston vertex", "collision", c, "t", s.now)
	}
	s.markDirty(&p.Mobile)
}

// changeParticleArea moves the particle to the neighbouring cell on the axis it is crossing
// The crossing axis is the one whose coordinate sits closest to a cell edge
func (s *State) changeParticleArea(p *Particle) {
	size := s.grid.Size()
	fx, fy := p.Pos.X/size, p.Pos.Y/size
	cell := p.cell
	if roundError(fx) < roundError(fy) {
		cell.X = edgeCell(fx, p.Vel.X)
	} else {
		cell.Y = edgeCell(fy, p.Vel.Y)
	}

	s.grid.RemoveParticle(p.ID, p.cell)
	s.grid.AddParticle(p.ID, cell)
	logging.Trace(s.logger, "area change", "id", p.ID, "from", p.cell, "to", cell, "t", s.now)
	p.cell = cell
	s.markDirty(&p.Mobile)
}

// changePistonArea re-registers the piston rows after an edge crossed a row boundary
func (s *State) changePistonArea(p *Piston) {
	size := s.grid.Size()
	edges := [2]float64{p.Pos.Y / size, (p.Pos.Y + p.Thickness) / size}
	crossing := 0
	if roundError(edges[1]) < roundError(edges[0]) {
		crossing = 1
	}

	var rows [2]int
	for i, f := range edges {
		if i == crossing || roundError(f) < parameter.CellTolerance {
			rows[i] = edgeCell(f, p.Vel.Y)
		} else {
			rows[i] = int(math.Floor(f))
		}
	}

	for _, r := range p.rows {
		s.grid.RemovePiston(p.ID, r)
	}
	p.rows = rows
	for _, r := range p.rows {
		s.grid.AddPiston(p.ID, r)
	}
	logging.Trace(s.logger, "piston rows", "id", p.ID, "top", rows[0], "bottom", rows[1], "t", s.now)
	s.markDirty(&p.Mobile)
}

func roundError(f float64) float64 {
	return math.Abs(math.Round(f) - f)
}

// edgeCell returns the cell entered when crossing the edge nearest to f with velocity v
func edgeCell(f, v float64) int {
	if v >= 0 {
		return int(math.Floor(f + 0.5))
	}
	return int(math.Floor(f - 0.5))
}
