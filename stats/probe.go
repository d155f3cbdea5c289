package stats

import (
	"fmt"

	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/vmath"
)

// TargetKind selects what a Target refers to
type TargetKind uint8

const (
	TargetPopulation TargetKind = iota
	TargetPiston
)

func (k TargetKind) String() string {
	if k == TargetPiston {
		return "piston"
	}
	return "population"
}

// MarshalText implements encoding.TextMarshaler
func (k TargetKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *TargetKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "population":
		*k = TargetPopulation
	case "piston":
		*k = TargetPiston
	default:
		return fmt.Errorf("unknown target kind %q", text)
	}
	return nil
}

// Target is a population or piston measured by a probe, optionally restricted to a region
type Target struct {
	Kind   TargetKind    `yaml:"kind"`
	Index  int           `yaml:"index"`
	Region vmath.Polygon `yaml:"region,omitempty"`
}

// Probe is one curve: the sum (or mean) of a quantity over its targets inside its region
type Probe struct {
	Name     string        `yaml:"name"`
	Quantity Quantity      `yaml:"quantity"`
	Mean     bool          `yaml:"mean,omitempty"`
	Color    core.RGB      `yaml:"color"`
	Targets  []Target      `yaml:"targets"`
	Region   vmath.Polygon `yaml:"region,omitempty"`
}

// Profile bins a per-particle value over horizontal slices
type Profile struct {
	Name    string        `yaml:"name"`
	Kind    ProfileKind   `yaml:"kind"`
	Mean    bool          `yaml:"mean,omitempty"`
	Slice   float64       `yaml:"slice"`
	Targets []Target      `yaml:"targets"`
	Region  vmath.Polygon `yaml:"region,omitempty"`
}

// Contains reports whether p lies in the region; an empty region covers the plane
func Contains(region vmath.Polygon, p vmath.Vec) bool {
	return len(region) == 0 || region.Inside(p)
}

// Accumulator sums probe contributions and applies the mean flag
type Accumulator struct {
	sum   float64
	count int
}

// Add records one member value; NaN contributions are skipped
func (a *Accumulator) Add(v float64) {
	if v != v {
		return
	}
	a.sum += v
	a.count++
}

// Result returns the sum, or the mean when mean is set; NaN when a mean has no members
func (a *Accumulator) Result(mean bool) float64 {
	if !mean {
		return a.sum
	}
	if a.count == 0 {
		return nan()
	}
	return a.sum / float64(a.count)
}

// Count returns the number of recorded contributions
func (a *Accumulator) Count() int {
	return a.count
}

// Names returns the probe names in order
func Names(probes []Probe) []string {
	names := make([]string, len(probes))
	for i, p := range probes {
		names[i] = p.Name
	}
	return names
}

// ProfileNames returns the profile names in order
func ProfileNames(profiles []Profile) []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	return names
}
