package engine

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/parameter"
	"github.com/lixenwraith/collisions/vmath"
)

// ErrInconsistent is the cause of every Check failure
var ErrInconsistent = errors.New("inconsistent state")

func inconsistent(format string, args ...any) error {
	return errors.Wrapf(ErrInconsistent, format, args...)
}

// Check verifies the grid registration, the prediction graph, the queue and population membership
func (s *State) Check() error {
	size := s.grid.Size()
	slack := parameter.CellTolerance * size

	registered := 0
	s.grid.EachParticle(func(core.ID, vmath.Cell) { registered++ })
	if registered != len(s.particles) {
		return inconsistent("grid holds %d particles, state %d", registered, len(s.particles))
	}

	for i := range s.particles {
		p := &s.particles[i]
		if !slices.Contains(s.grid.ParticlesAt(p.cell), p.ID) {
			return inconsistent("particle %d missing from cell %v", p.ID, p.cell)
		}
		if !within(p.Pos.X, p.cell.X, size, slack) || !within(p.Pos.Y, p.cell.Y, size, slack) {
			return inconsistent("particle %d at %v outside cell %v", p.ID, p.Pos, p.cell)
		}
	}

	contour := s.cfg.Contour.Polygon
	lo, hi := contour.Bounds()
	for i := range s.pistons {
		p := &s.pistons[i]
		if len(contour) != 0 && (p.Pos.Y < lo.Y-slack || p.Pos.Y+p.Thickness > hi.Y+slack) {
			return inconsistent("piston %d at %g left the contour span [%g, %g]", p.ID, p.Pos.Y, lo.Y, hi.Y)
		}
		if !within(p.Pos.Y, p.rows[0], size, slack) || !within(p.Pos.Y+p.Thickness, p.rows[1], size, slack) {
			return inconsistent("piston %d at %g outside rows %v", p.ID, p.Pos.Y, p.rows)
		}
		for _, r := range p.rows {
			if !slices.Contains(s.grid.PistonsAt(r), p.ID) {
				return inconsistent("piston %d missing from row %d", p.ID, r)
			}
		}
	}

	var stray error
	s.grid.EachPiston(func(id core.ID, row int) {
		if stray == nil && (!s.isPiston(id) || !slices.Contains(s.pistons[id].rows[:], row)) {
			stray = inconsistent("row %d holds stale piston %d", row, id)
		}
	})
	if stray != nil {
		return stray
	}

	if err := s.checkGraph(); err != nil {
		return err
	}

	var early error
	s.queue.Each(func(t core.Time, ev Scheduled) {
		if early == nil && t.Before(s.now) {
			early = inconsistent("%s event at %s before now %s", ev.Type, t, s.now)
		}
	})
	if early != nil {
		return early
	}

	members := 0
	for i := range s.populations {
		for _, id := range s.populations[i].members {
			p, ok := s.Particle(id)
			if !ok || p.pop != i {
				return inconsistent("population %d lists foreign particle %d", i, id)
			}
		}
		members += len(s.populations[i].members)
	}
	if members != len(s.particles) {
		return inconsistent("populations hold %d particles, state %d", members, len(s.particles))
	}
	return nil
}

// checkGraph verifies that targets and attached are mirror images
func (s *State) checkGraph() error {
	n := len(s.pistons) + len(s.particles)
	for i := range n {
		m := s.mobile(core.ID(i))
		for _, id := range m.targets {
			if !slices.Contains(s.mobile(id).attached, m.ID) {
				return inconsistent("mobile %d targets %d without being attached", m.ID, id)
			}
		}
		for _, id := range m.attached {
			if !slices.Contains(s.mobile(id).targets, m.ID) {
				return inconsistent("mobile %d attaches %d without being targeted", m.ID, id)
			}
		}
	}
	return nil
}

func within(v float64, cell int, size, slack float64) bool {
	lo := float64(cell) * size
	return v >= lo-slack && v <= lo+size+slack
}
