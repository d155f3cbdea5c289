package engine

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/lixenwraith/collisions/config"
	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/event"
	"github.com/lixenwraith/collisions/physics"
	"github.com/lixenwraith/collisions/vmath"
)

var (
	red  = core.RGB{R: 255}
	blue = core.RGB{B: 255}
)

// emptyScene has two placeable-free populations of unit discs and no obstacles
func emptyScene() *config.Scenario {
	cfg := config.Default()
	cfg.Steps = config.Steps{Draw: 100, Value: 100, Chart: 100}
	cfg.Populations = []config.Population{
		{Name: "red", Radius: 0.5, Mass: 1, Color: red},
		{Name: "blue", Radius: 0.5, Mass: 1, Color: blue},
	}
	return cfg
}

func newTestState(t *testing.T, cfg *config.Scenario) *State {
	t.Helper()
	s, err := NewState(cfg)
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	return s
}

func spawn(s *State, pop int, pos, vel vmath.Vec) core.ID {
	s.addParticle(pop, pos, vel)
	return s.particles[len(s.particles)-1].ID
}

// totalEnergy is kinetic plus gravitational potential energy of every mobile
func totalEnergy(s *State) float64 {
	var e float64
	for i := range s.particles {
		p := &s.particles[i]
		e += physics.KineticEnergy(p.Mass, p.Vel) - p.Mass*s.gravity.Dot(p.Pos)
	}
	for i := range s.pistons {
		p := &s.pistons[i]
		e += physics.KineticEnergy(p.Mass, p.Vel)
	}
	return e
}

// TestHeadOn verifies the contact time and exact velocity exchange of equal masses
func TestHeadOn(t *testing.T) {
	s := newTestState(t, emptyScene())
	a := spawn(s, 0, vmath.V(10.5, 10.5), vmath.V(1, 0))
	b := spawn(s, 0, vmath.V(13.5, 10.5), vmath.V(-1, 0))

	s.PlayUntil(core.At(0.999))
	pa, _ := s.Particle(a)
	if pa.Vel != vmath.V(1, 0) {
		t.Fatalf("Expected no contact before t=1, velocity %v", pa.Vel)
	}

	s.PlayUntil(core.At(1))
	if !s.Now().Equal(core.At(1)) {
		t.Fatalf("Expected clock at 1, got %s", s.Now())
	}
	pa, _ = s.Particle(a)
	pb, _ := s.Particle(b)
	if pa.Vel != vmath.V(-1, 0) || pb.Vel != vmath.V(1, 0) {
		t.Errorf("Expected exchanged velocities, got %v and %v", pa.Vel, pb.Vel)
	}
	if got := s.Counters().Collisions; got != 1 {
		t.Errorf("Expected 1 collision, got %d", got)
	}
	if err := s.Check(); err != nil {
		t.Errorf("Check failed: %v", err)
	}
}

// TestGravityBounce drops a disc on a floor and expects it back at its release height
func TestGravityBounce(t *testing.T) {
	cfg := emptyScene()
	cfg.Gravity = vmath.V(0, 1)
	cfg.Obstacles = []config.Obstacle{{Polygon: vmath.Rect(0, 20, 40, 22)}}
	s := newTestState(t, cfg)
	id := spawn(s, 0, vmath.V(10.5, 10), vmath.V(0, 0))
	e0 := totalEnergy(s)

	contact := math.Sqrt(19)
	s.PlayUntil(core.At(contact + 0.01))
	p, _ := s.Particle(id)
	if p.Vel.Y >= 0 {
		t.Fatalf("Expected upward velocity after bounce, got %v", p.Vel)
	}
	if got := s.Counters().Collisions; got != 1 {
		t.Errorf("Expected 1 collision, got %d", got)
	}

	s.PlayUntil(core.At(2 * contact))
	s.advance(core.At(2 * contact))
	if math.Abs(p.Pos.Y-10) > 1e-9 || math.Abs(p.Vel.Y) > 1e-9 {
		t.Errorf("Expected apex at y=10 at rest, got %v vel %v", p.Pos, p.Vel)
	}
	if math.Abs(totalEnergy(s)-e0) > 1e-9 {
		t.Errorf("Energy drifted from %g to %g", e0, totalEnergy(s))
	}
}

// TestPistonExchange verifies the vertical exchange between a disc and a piston
func TestPistonExchange(t *testing.T) {
	cfg := emptyScene()
	cfg.Pistons = []config.Piston{{Y: 5, Mass: 1, Thickness: 1}}
	s := newTestState(t, cfg)
	id := spawn(s, 0, vmath.V(10.5, 8.5), vmath.V(0, -1))

	s.PlayUntil(core.At(2))
	p, _ := s.Particle(id)
	if p.Vel.Y != 0 {
		t.Errorf("Expected particle at rest, got %v", p.Vel)
	}
	if got := s.Pistons()[0].Vel.Y; got != -1 {
		t.Errorf("Expected piston velocity -1, got %g", got)
	}
	if err := s.Check(); err != nil {
		t.Errorf("Check failed: %v", err)
	}
}

// TestAreaCrossing verifies the particle is re-binned exactly at the cell edge
func TestAreaCrossing(t *testing.T) {
	s := newTestState(t, emptyScene())
	id := spawn(s, 0, vmath.V(10.5, 10.5), vmath.V(1, 0))
	p, _ := s.Particle(id)
	start := p.Cell()
	size := s.SizeArea()

	edge := (float64(start.X+1)*size - 10.5) / 1
	s.PlayUntil(core.At(edge))
	if got := s.Counters().Crossings; got != 1 {
		t.Fatalf("Expected 1 crossing, got %d", got)
	}
	if p.Cell().X != start.X+1 || p.Cell().Y != start.Y {
		t.Errorf("Expected cell %v, got %v", vmath.Cell{X: start.X + 1, Y: start.Y}, p.Cell())
	}
	if err := s.Check(); err != nil {
		t.Errorf("Check failed: %v", err)
	}
}

// TestDemo_Invariants runs the demo scene checking time order, energy and graph consistency
func TestDemo_Invariants(t *testing.T) {
	s := newTestState(t, config.Demo())
	if len(s.Particles()) != 240 {
		t.Fatalf("Expected 240 particles, got %d", len(s.Particles()))
	}
	e0 := totalEnergy(s)

	last := s.Now()
	for s.Now().Before(core.At(5)) {
		if _, ok := s.PlayNext(); !ok {
			t.Fatal("Queue drained")
		}
		if s.Now().Before(last) {
			t.Fatalf("Clock went back from %s to %s", last, s.Now())
		}
		last = s.Now()
		if err := s.Check(); err != nil {
			t.Fatalf("Check failed at t=%s: %v", s.Now(), err)
		}
	}

	if e := totalEnergy(s); math.Abs(e-e0) > 1e-6*math.Abs(e0) {
		t.Errorf("Energy drifted from %g to %g", e0, e)
	}
	if s.Counters().Collisions == 0 {
		t.Error("Expected collisions in five time units")
	}
	if s.Phase() != PhaseIdle {
		t.Errorf("Expected idle phase, got %s", s.Phase())
	}
}

// TestRestart_Replays verifies that a restart reproduces the same run
func TestRestart_Replays(t *testing.T) {
	s := newTestState(t, config.Demo())
	s.PlayUntil(core.At(1))
	first := s.Snapshot(nil)
	want := append([]ParticleView(nil), first.Particles...)

	if err := s.Restart(); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	s.PlayUntil(core.At(1))
	got := s.Snapshot(first)
	for i := range want {
		if got.Particles[i] != want[i] {
			t.Fatalf("Particle %d diverged: %v vs %v", i, got.Particles[i], want[i])
		}
	}
}

// TestPlacement_Fails expects ErrPlacement when a region cannot hold a disc
func TestPlacement_Fails(t *testing.T) {
	cfg := emptyScene()
	cfg.Populations[0].Count = 1
	cfg.Populations[0].Radius = 2
	cfg.Populations[0].Region = vmath.Rect(0, 0, 2, 2)

	_, err := NewState(cfg)
	if errors.Cause(err) != ErrPlacement {
		t.Fatalf("Expected ErrPlacement, got %v", err)
	}
}

// TestRepeatGuard verifies that a contact performed at the current instant is not predicted again
func TestRepeatGuard(t *testing.T) {
	s := newTestState(t, emptyScene())
	a := spawn(s, 0, vmath.V(11, 10.5), vmath.V(1, 0))
	b := spawn(s, 0, vmath.V(20.5, 10.5), vmath.V(0, 0))
	c := vertexCollision(a, vmath.V(11.5, 10.5))

	if got := s.predict(c); !got.Equal(s.Now()) {
		t.Fatalf("Expected contact now, got %s", got)
	}
	s.mobile(a).setLastCollision(s.Now(), c)
	if got := s.predict(c); !got.IsNever() {
		t.Errorf("Expected repeated contact rejected, got %s", got)
	}

	other := vertexCollision(a, vmath.V(11.5, 10.4))
	if s.mobile(a).repeats(other, s.Now()) {
		t.Error("Expected a different vertex to pass the guard")
	}

	// A pair is only rejected when both sides performed it
	pair := pairCollision(a, b)
	s.mobile(a).setLastCollision(s.Now(), pair)
	if s.mobile(a).repeats(pair, s.Now()) && s.mobile(b).repeats(pair, s.Now()) {
		t.Error("Expected pair guard to require both mobiles")
	}
}

// TestReactions covers each reaction type on a head-on pair
func TestReactions(t *testing.T) {
	tests := []struct {
		name     string
		reaction config.Reaction
		swapped  bool
	}{
		{"none", config.Reaction{A: 0, B: 1, Type: config.ReactionNone, ToA: 1, ToB: 0}, true},
		{"reversed pair", config.Reaction{A: 1, B: 0, Type: config.ReactionNone, ToA: 0, ToB: 1}, true},
		{"certain", config.Reaction{A: 0, B: 1, Type: config.ReactionProbability, Threshold: 1, ToA: 1, ToB: 0}, true},
		{"impossible", config.Reaction{A: 0, B: 1, Type: config.ReactionProbability, Threshold: 0, ToA: 1, ToB: 0}, false},
		{"energy reached", config.Reaction{A: 0, B: 1, Type: config.ReactionEnergy, Threshold: 0.5, ToA: 1, ToB: 0}, true},
		{"energy short", config.Reaction{A: 0, B: 1, Type: config.ReactionEnergy, Threshold: 2, ToA: 1, ToB: 0}, false},
		{"other pair", config.Reaction{A: 0, B: 0, Type: config.ReactionNone, ToA: 1, ToB: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := emptyScene()
			cfg.Reactions = []config.Reaction{tt.reaction}
			s := newTestState(t, cfg)
			a := spawn(s, 0, vmath.V(10.5, 10.5), vmath.V(1, 0))
			b := spawn(s, 1, vmath.V(13.5, 10.5), vmath.V(-1, 0))
			s.PlayUntil(core.At(1))

			pa, _ := s.Particle(a)
			pb, _ := s.Particle(b)
			if got := pa.Population() == 1 && pb.Population() == 0; got != tt.swapped {
				t.Errorf("Expected swapped=%v, populations %d and %d", tt.swapped, pa.Population(), pb.Population())
			}
			if tt.swapped && (pa.Color != blue || pb.Color != red) {
				t.Errorf("Expected colors to follow populations, got %v and %v", pa.Color, pb.Color)
			}
			if err := s.Check(); err != nil {
				t.Errorf("Check failed: %v", err)
			}
		})
	}
}

// TestMutation_Exponential verifies probability timers average tau
func TestMutation_Exponential(t *testing.T) {
	const tau = 4.0
	cfg := emptyScene()
	cfg.Mutations = []config.Mutation{{From: 0, To: 1, Type: config.MutationProbability, Tau: tau}}
	s := newTestState(t, cfg)
	id := spawn(s, 0, vmath.V(10.5, 10.5), vmath.V(0, 0))
	p, _ := s.Particle(id)

	delays := make([]float64, 0, 5000)
	for range cap(delays) {
		at, ev, ok := s.queue.Get(p.mutation)
		if !ok || ev.Type != event.EventMutation {
			t.Fatal("Expected a queued mutation timer")
		}
		delays = append(delays, at.Seconds())
		s.queue.Remove(p.mutation)
		s.setPopulation(p)
	}
	if mean := stat.Mean(delays, nil); math.Abs(mean-tau) > 0.1*tau {
		t.Errorf("Expected mean delay near %g, got %g", tau, mean)
	}
}

// TestMutation_Fires verifies a fixed timer moves the particle and stops at a population without rules
func TestMutation_Fires(t *testing.T) {
	cfg := emptyScene()
	cfg.Mutations = []config.Mutation{{From: 0, To: 1, Type: config.MutationTime, Tau: 2}}
	s := newTestState(t, cfg)
	id := spawn(s, 0, vmath.V(10.5, 10.5), vmath.V(0, 0))

	s.PlayUntil(core.At(1.9))
	p, _ := s.Particle(id)
	if p.Population() != 0 {
		t.Fatalf("Expected population 0 before timer, got %d", p.Population())
	}
	s.PlayUntil(core.At(2))
	if p.Population() != 1 || p.Color != blue {
		t.Errorf("Expected population 1 after timer, got %d", p.Population())
	}
	if got := s.Counters().Mutations; got != 1 {
		t.Errorf("Expected 1 mutation, got %d", got)
	}
	if s.Population(0).Len() != 0 || s.Population(1).Len() != 1 {
		t.Errorf("Expected membership moved, got %d and %d", s.Population(0).Len(), s.Population(1).Len())
	}
}

// TestPistonVertex_Rounding verifies a piston edge a rounding step past a vertex still bounces
func TestPistonVertex_Rounding(t *testing.T) {
	tests := []struct {
		name   string
		y, vy  float64
		vertex vmath.Vec
		wantVY float64
	}{
		{"top edge above vertex", -1e-16, -4, vmath.V(0, 0), 4},
		{"top edge on vertex", 0, -4, vmath.V(80, 0), 4},
		{"bottom edge below vertex", 39 + 1e-15, 4, vmath.V(0, 40), -4},
		{"receding from above", 0, 4, vmath.V(0, 0), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := emptyScene()
			cfg.Contour = config.Obstacle{Polygon: vmath.Rect(0, 0, 80, 40)}
			cfg.Pistons = []config.Piston{{Y: 5, Mass: 50, Thickness: 1}}
			s := newTestState(t, cfg)

			p := s.piston(0)
			p.Pos.Y, p.Vel.Y = tt.y, tt.vy
			s.pistonVertex(p, Collision{Kind: CollisionVertex, A: p.ID, B: core.NoID, Vertex: tt.vertex})
			if p.Vel.Y != tt.wantVY {
				t.Errorf("Expected vy %g, got %g", tt.wantVY, p.Vel.Y)
			}
		})
	}
}

// TestDemo_PistonContained runs the demo lid against the contour corners
func TestDemo_PistonContained(t *testing.T) {
	s := newTestState(t, config.Demo())
	lo, hi := s.Config().Contour.Polygon.Bounds()
	th := s.Pistons()[0].Thickness

	for tick := 0; s.Now().Before(core.At(60)); tick++ {
		if _, ok := s.PlayNext(); !ok {
			t.Fatal("Queue drained")
		}
		p := &s.Pistons()[0]
		if p.Pos.Y < lo.Y-1e-9 || p.Pos.Y+th > hi.Y+1e-9 {
			t.Fatalf("Expected piston within [%g, %g] at t=%s, got y=%g vy=%g", lo.Y, hi.Y, s.Now(), p.Pos.Y, p.Vel.Y)
		}
		if tick%500 == 0 {
			if err := s.Check(); err != nil {
				t.Fatalf("Check failed at t=%s: %v", s.Now(), err)
			}
		}
	}
}

// TestFreePath_Walls verifies wall, vertex and piston contacts set free-path checkpoints
func TestFreePath_Walls(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(cfg *config.Scenario)
		pos, vel vmath.Vec
		want     float64
	}{
		{
			name:  "segment",
			setup: func(cfg *config.Scenario) { cfg.Contour = config.Obstacle{Polygon: vmath.Rect(0, 0, 20, 20)} },
			pos:   vmath.V(10, 10), vel: vmath.V(1, 0),
			want: 9.5,
		},
		{
			name: "vertex",
			setup: func(cfg *config.Scenario) {
				cfg.Obstacles = []config.Obstacle{{Polygon: vmath.Rect(12, 12, 14, 14)}}
			},
			pos: vmath.V(10, 10), vel: vmath.V(1, 1),
			want: 2 - 0.5/math.Sqrt2,
		},
		{
			name:  "piston",
			setup: func(cfg *config.Scenario) { cfg.Pistons = []config.Piston{{Y: 5, Mass: 1, Thickness: 1}} },
			pos:   vmath.V(10.5, 8.5), vel: vmath.V(0, -1),
			want: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := emptyScene()
			tt.setup(cfg)
			s := newTestState(t, cfg)
			id := spawn(s, 0, tt.pos, tt.vel)

			s.PlayUntil(core.At(tt.want + 0.01))
			p, _ := s.Particle(id)
			if s.Counters().Collisions != 1 {
				t.Fatalf("Expected 1 collision, got %d", s.Counters().Collisions)
			}
			if !p.ValidFree() {
				t.Fatal("Expected a valid free path after the contact")
			}
			if got := p.FreeTime(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Expected free time %g, got %g", tt.want, got)
			}
		})
	}
}
