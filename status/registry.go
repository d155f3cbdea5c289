// Package status publishes run metrics from the simulation driver to viewers
package status

import (
	"maps"
	"slices"
	"sync"
	"sync/atomic"
)

// Metric keys written by the driver
const (
	KeyTime        = "sim.time"
	KeyCollisions  = "sim.collisions"
	KeyCrossings   = "sim.crossings"
	KeyEvents      = "sim.events"
	KeyQueued      = "sim.queued"
	KeyParticles   = "sim.particles"
	KeyRateCPS     = "rate.collisions"
	KeyRateFPS     = "rate.frames"
	KeySpeed       = "view.speed"
	KeyPaused      = "view.paused"
	KeyMuted       = "view.muted"
	KeyMutations   = "sim.mutations"
	KeyReactions   = "sim.reactions"
	KeyPredictions = "sim.predictions"
)

// Registry holds named counters and gauges
// Lookups lock; the returned pointers are updated atomically without locking
type Registry struct {
	mu     sync.RWMutex
	ints   map[string]*atomic.Int64
	floats map[string]*AtomicFloat
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		ints:   make(map[string]*atomic.Int64),
		floats: make(map[string]*AtomicFloat),
	}
}

// Int returns the counter for key, creating it on first use
func (r *Registry) Int(key string) *atomic.Int64 {
	return lookup(r, r.ints, key)
}

// Float returns the gauge for key, creating it on first use
func (r *Registry) Float(key string) *AtomicFloat {
	return lookup(r, r.floats, key)
}

func lookup[T any](r *Registry, m map[string]*T, key string) *T {
	r.mu.RLock()
	ptr, ok := m[key]
	r.mu.RUnlock()
	if ok {
		return ptr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if ptr, ok := m[key]; ok {
		return ptr
	}
	ptr = new(T)
	m[key] = ptr
	return ptr
}

// Range visits every metric in key order, integers first
func (r *Registry) Range(fn func(key string, value float64)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, k := range slices.Sorted(maps.Keys(r.ints)) {
		fn(k, float64(r.ints[k].Load()))
	}
	for _, k := range slices.Sorted(maps.Keys(r.floats)) {
		fn(k, r.floats[k].Get())
	}
}

// Count returns the number of registered metrics
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ints) + len(r.floats)
}
