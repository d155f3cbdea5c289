package engine

import (
	"slices"

	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/event"
	"github.com/lixenwraith/collisions/vmath"
)

// Mobile is the state shared by particles and pistons
// Targets and attached are the two directions of the prediction graph:
// targets are the mobiles this one expects to hit at its target time,
// attached are the mobiles expecting to hit this one
type Mobile struct {
	ID    core.ID
	Pos   vmath.Vec
	Vel   vmath.Vec
	Mass  float64
	Color core.RGB

	target   core.Time
	pending  []event.Handle
	targets  []core.ID
	attached []core.ID

	lastTime       core.Time
	lastCollisions []Collision
}

func newMobile(id core.ID, pos, vel vmath.Vec, mass float64, color core.RGB) Mobile {
	return Mobile{
		ID:       id,
		Pos:      pos,
		Vel:      vel,
		Mass:     mass,
		Color:    color,
		target:   core.Never,
		lastTime: core.Never,
	}
}

// Target returns the time of the earliest predicted collision involving the mobile
func (m *Mobile) Target() core.Time {
	return m.target
}

// Targets returns the mobiles this one predicts hitting; callers must not modify
func (m *Mobile) Targets() []core.ID {
	return m.targets
}

// Attached returns the mobiles predicting to hit this one; callers must not modify
func (m *Mobile) Attached() []core.ID {
	return m.attached
}

// setLastCollision records c as performed at now, forgetting older instants
func (m *Mobile) setLastCollision(now core.Time, c Collision) {
	if !m.lastTime.Equal(now) {
		m.lastCollisions = m.lastCollisions[:0]
	}
	m.lastCollisions = append(m.lastCollisions, c)
	m.lastTime = now
}

// repeats reports whether c was already performed at t
func (m *Mobile) repeats(c Collision, t core.Time) bool {
	return m.lastTime.Equal(t) && slices.Contains(m.lastCollisions, c)
}

// Particle is a rigid disc belonging to one population
type Particle struct {
	Mobile
	Radius float64

	cell   vmath.Cell
	pop    int
	origin vmath.Vec

	// Free-ride checkpoints at the last two collisions
	oldFree, lastFree checkpoint

	mutation event.Handle
}

// Cell returns the registered grid cell
func (p *Particle) Cell() vmath.Cell {
	return p.cell
}

// Population returns the index of the owning population
func (p *Particle) Population() int {
	return p.pop
}

// markFree shifts the free-ride checkpoints to a collision at now
func (p *Particle) markFree(now core.Time) {
	p.oldFree = p.lastFree
	p.lastFree = checkpoint{pos: p.Pos, t: now}
}

// ValidFree reports whether both free-ride checkpoints are set
func (p *Particle) ValidFree() bool {
	return !p.oldFree.t.IsNever()
}

// FreeRide is the distance covered between the last two collisions
func (p *Particle) FreeRide() vmath.Vec {
	return p.lastFree.pos.Sub(p.oldFree.pos)
}

// FreeTime is the time elapsed between the last two collisions; NaN until valid
func (p *Particle) FreeTime() float64 {
	d := p.lastFree.t.Sub(p.oldFree.t)
	if d.IsNever() {
		return nan
	}
	return d.Seconds()
}

// FromOrigin is the displacement since spawning
func (p *Particle) FromOrigin() vmath.Vec {
	return p.Pos.Sub(p.origin)
}

type checkpoint struct {
	pos vmath.Vec
	t   core.Time
}

// Piston is a horizontally unbounded wall occupying [Y, Y+Thickness], moving vertically
type Piston struct {
	Mobile
	Thickness float64

	// Grid rows of the top and bottom edges
	rows [2]int
}

// Rows returns the grid rows of the top and bottom edges
func (p *Piston) Rows() (top, bottom int) {
	return p.rows[0], p.rows[1]
}

func addID(ids []core.ID, id core.ID) []core.ID {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeID(ids []core.ID, id core.ID) []core.ID {
	if i := slices.Index(ids, id); i >= 0 {
		last := len(ids) - 1
		ids[i] = ids[last]
		return ids[:last]
	}
	return ids
}

func removeHandle(hs []event.Handle, h event.Handle) []event.Handle {
	if i := slices.Index(hs, h); i >= 0 {
		last := len(hs) - 1
		hs[i] = hs[last]
		return hs[:last]
	}
	return hs
}
