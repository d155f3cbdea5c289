// Package config describes a simulation scenario and loads it from YAML
package config

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/parameter"
	"github.com/lixenwraith/collisions/stats"
	"github.com/lixenwraith/collisions/vmath"
)

// Scenario is the read-only description of one simulation
type Scenario struct {
	Name string `yaml:"name,omitempty"`

	// Seed feeds the state RNG; equal seeds replay identically
	Seed uint64 `yaml:"seed"`

	Gravity vmath.Vec `yaml:"gravity"`

	// Contour bounds the arena; its interior is free space
	// An empty contour leaves the plane unbounded
	Contour   Obstacle   `yaml:"contour"`
	Obstacles []Obstacle `yaml:"obstacles,omitempty"`

	Populations []Population `yaml:"populations"`
	Pistons     []Piston     `yaml:"pistons,omitempty"`
	Reactions   []Reaction   `yaml:"reactions,omitempty"`
	Mutations   []Mutation   `yaml:"mutations,omitempty"`

	Steps    Steps           `yaml:"steps"`
	Probes   []stats.Probe   `yaml:"probes,omitempty"`
	Profiles []stats.Profile `yaml:"profiles,omitempty"`

	// Lifespan is the time window kept by chart buffers
	Lifespan float64 `yaml:"lifespan"`
}

// Obstacle is a static polygon
type Obstacle struct {
	Polygon vmath.Polygon `yaml:"polygon"`
	Color   core.RGB      `yaml:"color"`
}

// Population describes a group of identical particles and where they spawn
type Population struct {
	Name   string        `yaml:"name,omitempty"`
	Count  int           `yaml:"count"`
	Radius float64       `yaml:"radius"`
	Mass   float64       `yaml:"mass"`
	Color  core.RGB      `yaml:"color"`
	Region vmath.Polygon `yaml:"region"`

	// Speed is the standard deviation of each initial velocity component
	Speed float64 `yaml:"speed"`
}

// Piston is a horizontal wall moving vertically, occupying [Y, Y+Thickness]
type Piston struct {
	Y         float64  `yaml:"y"`
	VY        float64  `yaml:"vy"`
	Mass      float64  `yaml:"mass"`
	Thickness float64  `yaml:"thickness"`
	Color     core.RGB `yaml:"color"`
}

// Reaction swaps a colliding pair of populations (A, B) into (ToA, ToB)
type Reaction struct {
	A         int          `yaml:"a"`
	B         int          `yaml:"b"`
	Type      ReactionType `yaml:"type"`
	Threshold float64      `yaml:"threshold,omitempty"`
	ToA       int          `yaml:"to_a"`
	ToB       int          `yaml:"to_b"`
}

// Mutation moves a particle from one population to another after a delay
type Mutation struct {
	From int          `yaml:"from"`
	To   int          `yaml:"to"`
	Type MutationType `yaml:"type"`
	Tau  float64      `yaml:"tau"`
}

// Steps are the periods of the recurring events
type Steps struct {
	Draw  float64 `yaml:"draw"`
	Value float64 `yaml:"value"`
	Chart float64 `yaml:"chart"`
}

// Default returns an empty scenario carrying the default periods
// Files are decoded on top of it
func Default() *Scenario {
	return &Scenario{
		Seed: 1,
		Steps: Steps{
			Draw:  parameter.DefaultStepDraw,
			Value: parameter.DefaultStepValue,
			Chart: parameter.DefaultStepChart,
		},
		Lifespan: parameter.DefaultLifespan,
	}
}

// Demo returns a small runnable scene: a boxed gas under light gravity with a piston lid
// Coordinates are screen oriented, y grows downward
func Demo() *Scenario {
	s := Default()
	s.Name = "demo"
	s.Gravity = vmath.V(0, 1)
	s.Contour = Obstacle{Polygon: vmath.Rect(0, 0, 80, 40), Color: core.RGBWhite}
	s.Obstacles = []Obstacle{{
		Polygon: vmath.Polygon{vmath.V(36, 40), vmath.V(40, 32), vmath.V(44, 40)},
		Color:   core.RGB{R: 160, G: 160, B: 160},
	}}
	s.Populations = []Population{
		{Name: "cold", Count: 120, Radius: 0.5, Mass: 1, Color: core.RGB{R: 80, G: 140, B: 255}, Region: vmath.Rect(1, 10, 39, 30), Speed: 3},
		{Name: "hot", Count: 120, Radius: 0.5, Mass: 1, Color: core.RGB{R: 255, G: 90, B: 60}, Region: vmath.Rect(41, 10, 79, 30), Speed: 6},
	}
	s.Pistons = []Piston{{Y: 5, Mass: 50, Thickness: 1, Color: core.RGB{R: 200, G: 200, B: 80}}}
	s.Mutations = []Mutation{{From: 1, To: 0, Type: MutationProbability, Tau: 40}}
	s.Probes = []stats.Probe{
		{Name: "cold energy", Quantity: stats.QuantityEnergy, Mean: true, Color: s.Populations[0].Color,
			Targets: []stats.Target{{Kind: stats.TargetPopulation, Index: 0}}},
		{Name: "hot energy", Quantity: stats.QuantityEnergy, Mean: true, Color: s.Populations[1].Color,
			Targets: []stats.Target{{Kind: stats.TargetPopulation, Index: 1}}},
		{Name: "piston height", Quantity: stats.QuantityPosY, Color: s.Pistons[0].Color,
			Targets: []stats.Target{{Kind: stats.TargetPiston, Index: 0}}},
	}
	s.Profiles = []stats.Profile{{
		Name: "density", Kind: stats.ProfileCount, Slice: 4,
		Targets: []stats.Target{{Kind: stats.TargetPopulation, Index: 0}, {Kind: stats.TargetPopulation, Index: 1}},
	}}
	return s
}

// Parse decodes a YAML scenario on top of Default
func Parse(data []byte) (*Scenario, error) {
	s := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		return nil, errors.Wrap(err, "parsing scenario")
	}
	return s, nil
}

// LoadFile reads, parses and validates a scenario file
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading scenario file")
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return s, nil
}

// Marshal writes the scenario as YAML
func Marshal(s *Scenario) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, errors.Wrap(err, "encoding scenario")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encoding scenario")
	}
	return buf.Bytes(), nil
}

// SizeArea is the grid cell size: larger than any particle diameter so that
// the 3x3 neighborhood covers every possible contact
func (s *Scenario) SizeArea() float64 {
	var r float64
	for _, p := range s.Populations {
		r = max(r, p.Radius)
	}
	if len(s.Populations) == 0 || r == 0 {
		return parameter.DefaultSizeArea
	}
	return r * parameter.SizeAreaFactor
}

// TotalParticles returns the number of particles the scenario spawns
func (s *Scenario) TotalParticles() int {
	n := 0
	for _, p := range s.Populations {
		n += p.Count
	}
	return n
}
