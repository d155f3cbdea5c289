package engine

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/lixenwraith/collisions/config"
	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/event"
	"github.com/lixenwraith/collisions/logging"
	"github.com/lixenwraith/collisions/stats"
	"github.com/lixenwraith/collisions/vmath"
)

// ErrPlacement is returned when a particle cannot be placed without overlap
var ErrPlacement = errors.New("no free position for particle")

// pcgStream is the second PCG word; the scenario seed is the first
const pcgStream = 0x9e3779b97f4a7c15

var nan = math.NaN()

// Counters are the running totals of one simulation
type Counters struct {
	Collisions  uint64 // Performed contacts, area crossings excluded
	Crossings   uint64 // Performed area crossings
	Predictions uint64 // Collision times computed
	PairTests   uint64 // Mobile pair times computed
	Events      uint64 // Events popped
	Ticks       uint64 // PlayNext calls that advanced time
	Mutations   uint64 // Population changes from timers
	Reactions   uint64 // Population changes from contacts
}

// Population is the live member list of one configured population
type Population struct {
	Config  config.Population
	members []core.ID
}

// Members returns the particle ids of the population; callers must not modify
func (p *Population) Members() []core.ID {
	return p.members
}

// Len returns the member count
func (p *Population) Len() int {
	return len(p.members)
}

// State owns one simulation: grid, mobiles, event queue and counters
// Not safe for concurrent use; viewers read through Snapshot
type State struct {
	cfg     *config.Scenario
	gravity vmath.Vec
	grid    *SpatialGrid

	populations []Population
	pistons     []Piston
	particles   []Particle

	queue *event.Queue[Scheduled]
	dirty map[core.ID]struct{}
	steps [3]float64 // Indexed by periodic event type - EventDraw

	now      core.Time
	phase    Phase
	counters Counters

	seed   uint64
	src    *rand.PCG
	logger *slog.Logger
	sink   stats.Sink

	// Reused scratch buffers
	refreshBuf []core.ID
	segBuf     []vmath.Segment
	idBuf      []core.ID
}

// Option configures a State
type Option func(*State)

// WithLogger routes engine diagnostics to l
func WithLogger(l *slog.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSink receives probe samples and chart flushes
func WithSink(sink stats.Sink) Option {
	return func(s *State) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithSeed overrides the scenario seed
func WithSeed(seed uint64) Option {
	return func(s *State) {
		s.seed = seed
	}
}

// NewState builds a simulation from cfg, which must outlive the state and stay unchanged
func NewState(cfg *config.Scenario, opts ...Option) (*State, error) {
	s := &State{
		cfg:    cfg,
		seed:   cfg.Seed,
		logger: logging.Discard(),
		sink:   stats.Discard,
		queue:  event.NewQueue[Scheduled](),
		dirty:  make(map[core.ID]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.steps = [3]float64{cfg.Steps.Draw, cfg.Steps.Value, cfg.Steps.Chart}
	if err := s.Restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// Restart discards the current simulation and rebuilds it from the scenario
// The RNG is reseeded so a restart replays the same run
func (s *State) Restart() error {
	s.queue.Clear()
	clear(s.dirty)
	s.now = core.At(0)
	s.phase = PhaseIdle
	s.counters = Counters{}
	s.src = rand.NewPCG(s.seed, pcgStream)
	s.gravity = s.cfg.Gravity
	s.grid = NewSpatialGrid(s.cfg.SizeArea())
	s.particles = nil
	s.populations = nil

	s.addObstacles()

	s.pistons = make([]Piston, 0, len(s.cfg.Pistons))
	for i := range s.cfg.Pistons {
		s.addPiston(i)
	}

	// Capacity is fixed so particle pointers stay valid during setup
	s.particles = make([]Particle, 0, s.cfg.TotalParticles())
	s.populations = make([]Population, len(s.cfg.Populations))
	for i := range s.cfg.Populations {
		s.populations[i].Config = s.cfg.Populations[i]
	}
	for i := range s.cfg.Populations {
		if err := s.createPopulation(i); err != nil {
			return err
		}
	}

	for _, typ := range [...]event.EventType{event.EventDraw, event.EventValue, event.EventChart} {
		s.schedulePeriodic(typ)
	}

	s.logger.Debug("simulation created",
		"particles", len(s.particles),
		"pistons", len(s.pistons),
		"size_area", s.grid.Size(),
		"queued", s.queue.Len(),
	)
	return nil
}

// addObstacles registers every obstacle vertex and segment, the contour last
func (s *State) addObstacles() {
	for _, o := range s.cfg.Obstacles {
		s.addPolygon(o.Polygon)
	}
	s.addPolygon(s.cfg.Contour.Polygon)
}

func (s *State) addPolygon(p vmath.Polygon) {
	for _, v := range p {
		s.grid.AddVertex(v)
	}
	for _, seg := range p.Segments() {
		s.grid.AddSegment(seg)
	}
}

func (s *State) addPiston(i int) {
	pc := s.cfg.Pistons[i]
	id := core.ID(i)
	s.pistons = append(s.pistons, Piston{
		Mobile:    newMobile(id, vmath.V(0, pc.Y), vmath.V(0, pc.VY), pc.Mass, pc.Color),
		Thickness: pc.Thickness,
	})
	p := &s.pistons[i]
	p.rows = [2]int{s.grid.RowOf(pc.Y), s.grid.RowOf(pc.Y + pc.Thickness)}
	s.grid.AddPiston(id, p.rows[0])
	s.grid.AddPiston(id, p.rows[1])
	s.updateCollisions(id)
}

func (s *State) schedulePeriodic(typ event.EventType) {
	s.queue.Push(s.now.After(s.steps[typ-event.EventDraw]), Scheduled{Type: typ})
}

// SetStep changes the period of a recurring event; it applies from the next occurrence
func (s *State) SetStep(typ event.EventType, step float64) {
	if typ.Periodic() && step > 0 {
		s.steps[typ-event.EventDraw] = step
	}
}

// Step returns the period of a recurring event
func (s *State) Step(typ event.EventType) float64 {
	if !typ.Periodic() {
		return 0
	}
	return s.steps[typ-event.EventDraw]
}

func (s *State) isPiston(id core.ID) bool {
	return int(id) < len(s.pistons)
}

func (s *State) mobile(id core.ID) *Mobile {
	if s.isPiston(id) {
		return &s.pistons[id].Mobile
	}
	return &s.particles[int(id)-len(s.pistons)].Mobile
}

func (s *State) particle(id core.ID) *Particle {
	return &s.particles[int(id)-len(s.pistons)]
}

func (s *State) piston(id core.ID) *Piston {
	return &s.pistons[id]
}

// Now returns the simulation clock
func (s *State) Now() core.Time {
	return s.now
}

// Phase returns the driver phase; idle between calls
func (s *State) Phase() Phase {
	return s.phase
}

// Config returns the scenario
func (s *State) Config() *config.Scenario {
	return s.cfg
}

// SizeArea returns the grid cell size
func (s *State) SizeArea() float64 {
	return s.grid.Size()
}

// Grid exposes the broad-phase index for inspection
func (s *State) Grid() *SpatialGrid {
	return s.grid
}

// Particles returns all particles in id order; callers must not modify
func (s *State) Particles() []Particle {
	return s.particles
}

// Pistons returns all pistons in id order; callers must not modify
func (s *State) Pistons() []Piston {
	return s.pistons
}

// Particle returns the particle with the given id
func (s *State) Particle(id core.ID) (*Particle, bool) {
	i := int(id) - len(s.pistons)
	if s.isPiston(id) || i >= len(s.particles) {
		return nil, false
	}
	return &s.particles[i], true
}

// Populations returns the number of populations
func (s *State) Populations() int {
	return len(s.populations)
}

// Population returns population i
func (s *State) Population(i int) *Population {
	return &s.populations[i]
}

// Counters returns the running totals
func (s *State) Counters() Counters {
	return s.counters
}

// Queued returns the number of pending events
func (s *State) Queued() int {
	return s.queue.Len()
}
