package engine

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/lixenwraith/collisions/parameter"
	"github.com/lixenwraith/collisions/physics"
	"github.com/lixenwraith/collisions/stats"
)

// Sample evaluates every probe and profile at now and pushes them to the sink
func (s *State) Sample() {
	t := s.now.Seconds()
	for i := range s.cfg.Probes {
		s.sink.PushValue(i, t, s.ProbeValue(&s.cfg.Probes[i]))
	}
	for i := range s.cfg.Profiles {
		s.sink.PushProfile(i, t, s.ProfileBins(&s.cfg.Profiles[i]))
	}
}

// ProbeValue sums the probe quantity over its targets, or averages it when the probe is a mean
// Piston targets ignore regions
func (s *State) ProbeValue(pr *stats.Probe) float64 {
	var acc stats.Accumulator
	for _, tg := range pr.Targets {
		switch tg.Kind {
		case stats.TargetPiston:
			if tg.Index < len(s.pistons) && pr.Quantity.PistonDefined() {
				acc.Add(pistonQuantity(&s.pistons[tg.Index], pr.Quantity))
			}
		case stats.TargetPopulation:
			if tg.Index >= len(s.populations) {
				continue
			}
			for _, id := range s.populations[tg.Index].members {
				p := s.particle(id)
				if stats.Contains(tg.Region, p.Pos) && stats.Contains(pr.Region, p.Pos) {
					acc.Add(particleQuantity(p, pr.Quantity))
				}
			}
		}
	}
	return acc.Result(pr.Mean)
}

// ProfileBins bins particle energy or count by horizontal slice
func (s *State) ProfileBins(pf *stats.Profile) map[int]float64 {
	bin := stats.NewBin(pf.Slice)
	for _, tg := range pf.Targets {
		if tg.Kind != stats.TargetPopulation || tg.Index >= len(s.populations) {
			continue
		}
		for _, id := range s.populations[tg.Index].members {
			p := s.particle(id)
			if !stats.Contains(tg.Region, p.Pos) || !stats.Contains(pf.Region, p.Pos) {
				continue
			}
			v := 1.0
			if pf.Kind == stats.ProfileEnergy {
				v = physics.KineticEnergy(p.Mass, p.Vel)
			}
			bin.Add(p.Pos.Y, v)
		}
	}
	return bin.Result(pf.Mean)
}

func particleQuantity(p *Particle, q stats.Quantity) float64 {
	switch q {
	case stats.QuantityPosX:
		return p.Pos.X
	case stats.QuantityPosY:
		return -p.Pos.Y
	case stats.QuantityVelX:
		return p.Vel.X
	case stats.QuantityVelY:
		return -p.Vel.Y
	case stats.QuantitySpeed:
		return p.Vel.Length()
	case stats.QuantitySpeed2:
		return p.Vel.SquareLength()
	case stats.QuantityEnergy:
		return physics.KineticEnergy(p.Mass, p.Vel)
	case stats.QuantityFreeRide:
		if !p.ValidFree() {
			return nan
		}
		return p.FreeRide().Length()
	case stats.QuantityFreeTime:
		return p.FreeTime()
	case stats.QuantityFromOrigin:
		return p.FromOrigin().Length()
	case stats.QuantityFromOrigin2:
		return p.FromOrigin().SquareLength()
	case stats.QuantityCount:
		return 1
	default:
		return nan
	}
}

func pistonQuantity(p *Piston, q stats.Quantity) float64 {
	switch q {
	case stats.QuantityPosX:
		return p.Pos.X
	case stats.QuantityPosY:
		return -p.Pos.Y
	case stats.QuantityVelX:
		return p.Vel.X
	case stats.QuantityVelY:
		return -p.Vel.Y
	case stats.QuantitySpeed:
		return p.Vel.Length()
	case stats.QuantitySpeed2:
		return p.Vel.SquareLength()
	case stats.QuantityEnergy:
		return physics.KineticEnergy(p.Mass, p.Vel)
	case stats.QuantityCount:
		return 1
	default:
		return nan
	}
}

// PopulationStats are aggregate kinematics of one population
// Free path means are NaN until enough members completed a free path
type PopulationStats struct {
	Count int

	MeanSpeed, TotalSpeed   float64
	MeanSpeed2, TotalSpeed2 float64
	MeanEnergy, TotalEnergy float64

	MeanFromOrigin, MeanFromOrigin2 float64

	MeanFreeRide, MeanFreeTime float64
	Pressure                   float64
}

// PopulationStats computes the aggregates of population i
func (s *State) PopulationStats(i int) PopulationStats {
	members := s.populations[i].members
	st := PopulationStats{Count: len(members)}
	if st.Count == 0 {
		st.MeanSpeed, st.MeanSpeed2, st.MeanEnergy = nan, nan, nan
		st.MeanFromOrigin, st.MeanFromOrigin2 = nan, nan
		st.MeanFreeRide, st.MeanFreeTime, st.Pressure = nan, nan, nan
		return st
	}

	speed := make([]float64, 0, st.Count)
	speed2 := make([]float64, 0, st.Count)
	energy := make([]float64, 0, st.Count)
	origin := make([]float64, 0, st.Count)
	origin2 := make([]float64, 0, st.Count)
	var ride, elapsed []float64
	for _, id := range members {
		p := s.particle(id)
		speed = append(speed, p.Vel.Length())
		speed2 = append(speed2, p.Vel.SquareLength())
		energy = append(energy, physics.KineticEnergy(p.Mass, p.Vel))
		origin = append(origin, p.FromOrigin().Length())
		origin2 = append(origin2, p.FromOrigin().SquareLength())
		if p.ValidFree() {
			ride = append(ride, p.FreeRide().Length())
			elapsed = append(elapsed, p.FreeTime())
		}
	}

	st.MeanSpeed, st.TotalSpeed = stat.Mean(speed, nil), floats.Sum(speed)
	st.MeanSpeed2, st.TotalSpeed2 = stat.Mean(speed2, nil), floats.Sum(speed2)
	st.MeanEnergy, st.TotalEnergy = stat.Mean(energy, nil), floats.Sum(energy)
	st.MeanFromOrigin = stat.Mean(origin, nil)
	st.MeanFromOrigin2 = stat.Mean(origin2, nil)

	st.MeanFreeRide, st.MeanFreeTime, st.Pressure = nan, nan, nan
	if float64(len(ride)) > parameter.FreePathValidRatio*float64(st.Count) {
		st.MeanFreeRide = stat.Mean(ride, nil)
		st.MeanFreeTime = stat.Mean(elapsed, nil)
		st.Pressure = st.MeanEnergy / (st.MeanFreeRide * st.MeanFreeRide)
	}
	return st
}
