package event

import (
	"container/heap"

	"github.com/lixenwraith/collisions/core"
)

// Handle addresses a queued entry; stale handles are detected by generation
// Zero value never matches a live entry
type Handle struct {
	slot uint32
	gen  uint32
}

// Valid reports whether the handle was ever issued
func (h Handle) Valid() bool {
	return h.gen != 0
}

type entry[T any] struct {
	time  core.Time
	seq   uint64
	value T
	index int // Position in heap, -1 when not queued
	gen   uint32
}

// Queue is a time-ordered priority queue with O(log n) removal by handle
// Entries with equal times pop in insertion order
// Not safe for concurrent use; owned by one simulation state
type Queue[T any] struct {
	slab []entry[T]
	free []uint32
	heap slotHeap[T]
	seq  uint64
}

// NewQueue creates an empty queue
func NewQueue[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.heap.q = q
	return q
}

// Len returns the number of queued entries
func (q *Queue[T]) Len() int {
	return len(q.heap.slots)
}

// Push schedules value at time t and returns its handle
func (q *Queue[T]) Push(t core.Time, value T) Handle {
	var slot uint32
	if n := len(q.free); n > 0 {
		slot = q.free[n-1]
		q.free = q.free[:n-1]
	} else {
		q.slab = append(q.slab, entry[T]{})
		slot = uint32(len(q.slab) - 1)
	}

	e := &q.slab[slot]
	e.gen++
	if e.gen == 0 {
		e.gen = 1
	}
	q.seq++
	e.time, e.seq, e.value = t, q.seq, value
	heap.Push(&q.heap, slot)
	return Handle{slot: slot, gen: e.gen}
}

// Contains reports whether h still refers to a queued entry
func (q *Queue[T]) Contains(h Handle) bool {
	if !h.Valid() || int(h.slot) >= len(q.slab) {
		return false
	}
	e := &q.slab[h.slot]
	return e.gen == h.gen && e.index >= 0
}

// Get returns the time and value of a queued entry
func (q *Queue[T]) Get(h Handle) (core.Time, T, bool) {
	if !q.Contains(h) {
		var zero T
		return core.Never, zero, false
	}
	e := &q.slab[h.slot]
	return e.time, e.value, true
}

// Remove unschedules h; removing a popped or already removed handle is a no-op
func (q *Queue[T]) Remove(h Handle) bool {
	if !q.Contains(h) {
		return false
	}
	heap.Remove(&q.heap, q.slab[h.slot].index)
	q.release(h.slot)
	return true
}

// Peek returns the earliest time without removing it
func (q *Queue[T]) Peek() (core.Time, bool) {
	if len(q.heap.slots) == 0 {
		return core.Never, false
	}
	return q.slab[q.heap.slots[0]].time, true
}

// Pop removes and returns the earliest entry
func (q *Queue[T]) Pop() (core.Time, T, bool) {
	if len(q.heap.slots) == 0 {
		var zero T
		return core.Never, zero, false
	}
	slot := heap.Pop(&q.heap).(uint32)
	e := &q.slab[slot]
	t, v := e.time, e.value
	q.release(slot)
	return t, v, true
}

// Each visits queued entries in no particular order
func (q *Queue[T]) Each(fn func(t core.Time, value T)) {
	for _, slot := range q.heap.slots {
		e := &q.slab[slot]
		fn(e.time, e.value)
	}
}

// Clear drops all entries and invalidates every handle
func (q *Queue[T]) Clear() {
	for _, slot := range q.heap.slots {
		q.release(slot)
	}
	q.heap.slots = q.heap.slots[:0]
}

func (q *Queue[T]) release(slot uint32) {
	e := &q.slab[slot]
	var zero T
	e.value = zero
	e.index = -1
	q.free = append(q.free, slot)
}

// slotHeap adapts the slab to container/heap, keeping entry indices current
type slotHeap[T any] struct {
	q     *Queue[T]
	slots []uint32
}

func (h *slotHeap[T]) Len() int { return len(h.slots) }

func (h *slotHeap[T]) Less(i, j int) bool {
	a, b := &h.q.slab[h.slots[i]], &h.q.slab[h.slots[j]]
	if a.time.Equal(b.time) {
		return a.seq < b.seq
	}
	return a.time.Before(b.time)
}

func (h *slotHeap[T]) Swap(i, j int) {
	h.slots[i], h.slots[j] = h.slots[j], h.slots[i]
	h.q.slab[h.slots[i]].index = i
	h.q.slab[h.slots[j]].index = j
}

func (h *slotHeap[T]) Push(x any) {
	slot := x.(uint32)
	h.q.slab[slot].index = len(h.slots)
	h.slots = append(h.slots, slot)
}

func (h *slotHeap[T]) Pop() any {
	n := len(h.slots) - 1
	slot := h.slots[n]
	h.slots = h.slots[:n]
	h.q.slab[slot].index = -1
	return slot
}
