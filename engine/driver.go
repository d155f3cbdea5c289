package engine

import (
	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/event"
	"github.com/lixenwraith/collisions/physics"
)

// Phase is the driver step in progress
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseAdvancing
	PhaseDraining
	PhaseRefreshing
)

var phaseNames = [...]string{
	PhaseIdle:       "idle",
	PhaseAdvancing:  "advancing",
	PhaseDraining:   "draining",
	PhaseRefreshing: "refreshing",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// PlayNext advances to the earliest queued instant and performs everything scheduled there
// Returns whether a draw event fired, and false for ok when the queue is empty
func (s *State) PlayNext() (drew, ok bool) {
	t, ok := s.queue.Peek()
	if !ok || t.IsNever() {
		return false, false
	}

	s.phase = PhaseAdvancing
	s.advance(t)

	s.phase = PhaseDraining
	var fired [3]bool
	for {
		next, ok := s.queue.Peek()
		if !ok || !next.Equal(s.now) {
			break
		}
		_, ev, _ := s.queue.Pop()
		s.counters.Events++
		switch ev.Type {
		case event.EventCollision:
			s.perform(ev.Collision)
		case event.EventMutation:
			s.mutate(ev.Particle)
		case event.EventDraw:
			drew = true
		case event.EventValue:
			s.Sample()
		case event.EventChart:
			s.sink.Flush(s.now.Seconds())
		}
		if ev.Type.Periodic() {
			fired[ev.Type-event.EventDraw] = true
		}
	}

	s.phase = PhaseRefreshing
	s.refresh()

	for i, f := range fired {
		if f {
			s.schedulePeriodic(event.EventDraw + event.EventType(i))
		}
	}
	s.counters.Ticks++
	s.phase = PhaseIdle
	return drew, true
}

// PlayToNextDraw runs ticks until a draw event fires or the queue empties
func (s *State) PlayToNextDraw() bool {
	for {
		drew, ok := s.PlayNext()
		if !ok {
			return false
		}
		if drew {
			return true
		}
	}
}

// PlayUntil runs every tick scheduled at or before t
func (s *State) PlayUntil(t core.Time) {
	for {
		next, ok := s.queue.Peek()
		if !ok || t.Before(next) {
			return
		}
		s.PlayNext()
	}
}

// advance moves every mobile along its trajectory to t
func (s *State) advance(t core.Time) {
	dt := t.Sub(s.now).Seconds()
	if dt > 0 {
		for i := range s.particles {
			p := &s.particles[i]
			p.Pos, p.Vel = physics.Integrate(p.Pos, p.Vel, s.gravity, dt)
		}
		for i := range s.pistons {
			p := &s.pistons[i]
			p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		}
	}
	s.now = t
}
