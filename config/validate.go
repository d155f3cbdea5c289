package config

import (
	"math"

	"github.com/pkg/errors"

	"github.com/lixenwraith/collisions/stats"
	"github.com/lixenwraith/collisions/vmath"
)

// ErrInvalid is the cause of every validation failure
var ErrInvalid = errors.New("invalid scenario")

func invalid(format string, args ...any) error {
	return errors.Wrapf(ErrInvalid, format, args...)
}

// Validate checks that the scenario can be simulated
func (s *Scenario) Validate() error {
	if s.TotalParticles() == 0 {
		return invalid("at least one particle is required")
	}
	if !finite(s.Gravity.X) || !finite(s.Gravity.Y) {
		return invalid("gravity must be finite")
	}

	if n := len(s.Contour.Polygon); n != 0 && n < 3 {
		return invalid("contour needs at least 3 vertices, got %d", n)
	}
	for i, o := range s.Obstacles {
		if err := checkPolygon(o.Polygon); err != nil {
			return errors.Wrapf(err, "obstacle %d", i)
		}
	}

	for i, p := range s.Populations {
		switch {
		case p.Count < 0:
			return invalid("population %d: negative count", i)
		case !(p.Radius > 0):
			return invalid("population %d: radius must be positive", i)
		case !(p.Mass > 0):
			return invalid("population %d: mass must be positive", i)
		case !(p.Speed >= 0):
			return invalid("population %d: speed must be non-negative", i)
		}
		if p.Count > 0 {
			if err := checkPolygon(p.Region); err != nil {
				return errors.Wrapf(err, "population %d region", i)
			}
		}
	}

	for i, p := range s.Pistons {
		switch {
		case !(p.Mass > 0):
			return invalid("piston %d: mass must be positive", i)
		case !(p.Thickness > 0):
			return invalid("piston %d: thickness must be positive", i)
		case !finite(p.Y) || !finite(p.VY):
			return invalid("piston %d: position and speed must be finite", i)
		}
		if len(s.Contour.Polygon) != 0 {
			if lo, hi := s.Contour.Polygon.Bounds(); p.Y < lo.Y || p.Y+p.Thickness > hi.Y {
				return invalid("piston %d: outside the contour span [%g, %g]", i, lo.Y, hi.Y)
			}
		}
	}

	pops := len(s.Populations)
	for i, r := range s.Reactions {
		if !index(r.A, pops) || !index(r.B, pops) || !index(r.ToA, pops) || !index(r.ToB, pops) {
			return invalid("reaction %d: population index out of range", i)
		}
		switch r.Type {
		case ReactionNone, ReactionEnergy:
		case ReactionProbability:
			if r.Threshold < 0 || r.Threshold > 1 {
				return invalid("reaction %d: probability %g outside [0, 1]", i, r.Threshold)
			}
		default:
			return invalid("reaction %d: unknown type %d", i, r.Type)
		}
	}
	for i, m := range s.Mutations {
		if !index(m.From, pops) || !index(m.To, pops) {
			return invalid("mutation %d: population index out of range", i)
		}
		switch m.Type {
		case MutationTime:
		case MutationProbability:
			if !(m.Tau > 0) {
				return invalid("mutation %d: tau must be positive", i)
			}
		default:
			return invalid("mutation %d: unknown type %d", i, m.Type)
		}
	}

	if !(s.Steps.Draw > 0) || !(s.Steps.Value > 0) || !(s.Steps.Chart > 0) {
		return invalid("steps must be positive")
	}

	for i, p := range s.Probes {
		if err := s.checkTargets(p.Targets); err != nil {
			return errors.Wrapf(err, "probe %d", i)
		}
	}
	for i, p := range s.Profiles {
		if !(p.Slice > 0) {
			return invalid("profile %d: slice must be positive", i)
		}
		if err := s.checkTargets(p.Targets); err != nil {
			return errors.Wrapf(err, "profile %d", i)
		}
	}
	return nil
}

func (s *Scenario) checkTargets(targets []stats.Target) error {
	for i, t := range targets {
		limit := len(s.Populations)
		if t.Kind == stats.TargetPiston {
			limit = len(s.Pistons)
		}
		if !index(t.Index, limit) {
			return invalid("target %d: %s index %d out of range", i, t.Kind, t.Index)
		}
	}
	return nil
}

func checkPolygon(p vmath.Polygon) error {
	if len(p) < 3 {
		return invalid("polygon needs at least 3 vertices, got %d", len(p))
	}
	for _, v := range p {
		if !finite(v.X) || !finite(v.Y) {
			return invalid("polygon vertex %v is not finite", v)
		}
	}
	return nil
}

func index(i, n int) bool {
	return i >= 0 && i < n
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
