package engine

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lixenwraith/collisions/config"
	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/event"
	"github.com/lixenwraith/collisions/logging"
	"github.com/lixenwraith/collisions/parameter"
	"github.com/lixenwraith/collisions/vmath"
)

// createPopulation spawns the configured particles of population i at free random positions
func (s *State) createPopulation(i int) error {
	pc := s.populations[i].Config
	if pc.Count == 0 {
		return nil
	}
	lo, hi := pc.Region.Bounds()
	ux := distuv.Uniform{Min: lo.X, Max: hi.X, Src: s.src}
	uy := distuv.Uniform{Min: lo.Y, Max: hi.Y, Src: s.src}
	speed := distuv.Normal{Mu: 0, Sigma: pc.Speed, Src: s.src}

	for n := 0; n < pc.Count; n++ {
		pos, ok := s.place(pc, ux, uy)
		if !ok {
			return errors.Wrapf(ErrPlacement, "population %d (%s) particle %d", i, pc.Name, n)
		}
		vel := vmath.V(0, 0)
		if pc.Speed > 0 {
			vel = vmath.V(speed.Rand(), speed.Rand())
		}
		s.addParticle(i, pos, vel)
	}
	s.logger.Debug("population created", "index", i, "name", pc.Name, "count", pc.Count)
	return nil
}

// place draws positions in the region bounds until one is free
func (s *State) place(pc config.Population, ux, uy distuv.Uniform) (vmath.Vec, bool) {
	for attempt := 1; attempt <= parameter.MaxPlacementAttempts; attempt++ {
		pos := vmath.V(ux.Rand(), uy.Rand())
		if s.placeable(pos, pc.Radius, pc.Region) {
			if attempt > 1 {
				logging.Trace(s.logger, "placement retried", "attempts", attempt)
			}
			return pos, true
		}
	}
	return vmath.Vec{}, false
}

// placeable reports whether a disc at pos lies inside region and the contour
// without touching obstacles, pistons or other particles
func (s *State) placeable(pos vmath.Vec, r float64, region vmath.Polygon) bool {
	if region.Intersects(pos, r) || !region.Inside(pos) {
		return false
	}
	if contour := s.cfg.Contour.Polygon; len(contour) > 0 {
		if contour.Intersects(pos, r) || !contour.Inside(pos) {
			return false
		}
	}
	for _, o := range s.cfg.Obstacles {
		if o.Polygon.Intersects(pos, r) || o.Polygon.Inside(pos) {
			return false
		}
	}
	for i := range s.pistons {
		p := &s.pistons[i]
		if p.Pos.Y-pos.Y <= r && pos.Y-p.Pos.Y <= r+p.Thickness {
			return false
		}
	}

	c := s.grid.CellOf(pos)
	for y := c.Y - 1; y <= c.Y+1; y++ {
		for x := c.X - 1; x <= c.X+1; x++ {
			for _, id := range s.grid.ParticlesAt(vmath.Cell{X: x, Y: y}) {
				q := s.particle(id)
				reach := r + q.Radius
				if q.Pos.Sub(pos).SquareLength() <= reach*reach {
					return false
				}
			}
		}
	}
	return true
}

func (s *State) addParticle(pop int, pos, vel vmath.Vec) {
	pc := s.populations[pop].Config
	id := core.ID(len(s.pistons) + len(s.particles))
	s.particles = append(s.particles, Particle{
		Mobile:   newMobile(id, pos, vel, pc.Mass, pc.Color),
		Radius:   pc.Radius,
		cell:     s.grid.CellOf(pos),
		pop:      pop,
		origin:   pos,
		oldFree:  checkpoint{t: core.Never},
		lastFree: checkpoint{pos: pos, t: s.now},
	})
	p := &s.particles[len(s.particles)-1]
	s.grid.AddParticle(id, p.cell)
	s.populations[pop].members = append(s.populations[pop].members, id)
	s.setPopulation(p)
	s.updateCollisions(id)
}

// mutationRule returns the first mutation leaving population pop
func (s *State) mutationRule(pop int) (config.Mutation, bool) {
	for _, m := range s.cfg.Mutations {
		if m.From == pop {
			return m, true
		}
	}
	return config.Mutation{}, false
}

// setPopulation arms the mutation timer of the particle's current population
func (s *State) setPopulation(p *Particle) {
	rule, ok := s.mutationRule(p.pop)
	if !ok {
		return
	}
	delay := rule.Tau
	if rule.Type == config.MutationProbability {
		delay = distuv.Exponential{Rate: 1 / rule.Tau, Src: s.src}.Rand()
	}
	if delay > 0 {
		p.mutation = s.queue.Push(s.now.After(delay), Scheduled{Type: event.EventMutation, Particle: p.ID})
	}
}

// swap moves the particle to population to, taking its color and mutation rule
func (s *State) swap(p *Particle, to int) {
	if to == p.pop {
		return
	}
	from := &s.populations[p.pop]
	from.members = removeID(from.members, p.ID)
	s.populations[to].members = append(s.populations[to].members, p.ID)
	p.pop = to
	p.Color = s.populations[to].Config.Color

	s.queue.Remove(p.mutation)
	p.mutation = event.Handle{}
	s.setPopulation(p)
}

// mutate fires the particle's population timer
func (s *State) mutate(id core.ID) {
	p := s.particle(id)
	p.mutation = event.Handle{}
	rule, ok := s.mutationRule(p.pop)
	if !ok {
		return
	}
	logging.Trace(s.logger, "mutation", "id", id, "from", p.pop, "to", rule.To, "t", s.now)
	s.swap(p, rule.To)
	s.counters.Mutations++
}
