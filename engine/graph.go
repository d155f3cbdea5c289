package engine

import (
	"slices"

	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/event"
)

// updateCollisions drops the mobile's predictions and searches fresh candidates
func (s *State) updateCollisions(id core.ID) {
	m := s.mobile(id)
	m.target = core.Never
	s.detach(m)
	if s.isPiston(id) {
		s.searchPiston(s.piston(id))
	} else {
		s.searchParticle(s.particle(id))
	}
}

// detach unschedules the mobile's pending events and removes its outgoing edges
func (s *State) detach(m *Mobile) {
	for _, h := range m.pending {
		_, ev, ok := s.queue.Get(h)
		if !ok {
			continue
		}
		s.queue.Remove(h)
		if ev.Collision.Kind == CollisionMobiles {
			other := s.mobile(ev.Collision.Other(m.ID))
			other.pending = removeHandle(other.pending, h)
		}
	}
	m.pending = m.pending[:0]

	for _, id := range m.targets {
		t := s.mobile(id)
		t.attached = removeID(t.attached, m.ID)
	}
	m.targets = m.targets[:0]
}

// addTarget records that a expects to hit b at a.target
// The event is queued once both sides claim each other and addEvent is set
func (s *State) addTarget(a, b *Mobile, addEvent bool) bool {
	a.targets = addID(a.targets, b.ID)
	b.attached = addID(b.attached, a.ID)
	if !addEvent || !slices.Contains(b.targets, a.ID) {
		return false
	}
	h := s.queue.Push(a.target, Scheduled{Type: event.EventCollision, Collision: pairCollision(a.ID, b.ID)})
	a.pending = append(a.pending, h)
	b.pending = append(b.pending, h)
	return true
}

// testMobile predicts a against another mobile and claims the contact on both sides when it is earliest
func (s *State) testMobile(a, b *Mobile) {
	t := s.predict(pairCollision(a.ID, b.ID))
	if t.IsNever() || t.Before(s.now) {
		return
	}
	if t.Before(a.target) {
		a.target = t
		s.detach(a)
	}
	if t.Before(b.target) {
		b.target = t
		s.detach(b)
	}
	add := true
	if t.Equal(a.target) {
		add = !s.addTarget(a, b, true)
	}
	if t.Equal(b.target) {
		s.addTarget(b, a, add)
	}
}

// testSingle predicts a contact involving one mobile and queues it when it is earliest
func (s *State) testSingle(m *Mobile, c Collision) {
	t := s.predict(c)
	if t.IsNever() || t.Before(s.now) {
		return
	}
	if t.Before(m.target) {
		m.target = t
		s.detach(m)
	}
	if t.Equal(m.target) {
		m.pending = append(m.pending, s.queue.Push(t, Scheduled{Type: event.EventCollision, Collision: c}))
	}
}

// markDirty schedules m and every mobile predicting to hit it for refresh
func (s *State) markDirty(m *Mobile) {
	s.dirty[m.ID] = struct{}{}
	for _, id := range m.attached {
		s.dirty[id] = struct{}{}
	}
}

// refresh recomputes the predictions of dirty mobiles in ascending id order
func (s *State) refresh() {
	ids := s.refreshBuf[:0]
	for id := range s.dirty {
		ids = append(ids, id)
	}
	clear(s.dirty)
	slices.Sort(ids)
	for _, id := range ids {
		s.updateCollisions(id)
	}
	s.refreshBuf = ids[:0]
}
