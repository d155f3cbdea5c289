package stats

import (
	"sync"
	"sync/atomic"
)

// Sink receives samples computed by the engine
// Indices refer to the probe and profile order of the scenario
type Sink interface {
	PushValue(probe int, t, v float64)
	PushProfile(profile int, t float64, bins map[int]float64)
	Flush(t float64)
}

// Group is a Sink holding one curve per probe and one series per profile
// Safe for one writer and concurrent readers
type Group struct {
	mu       sync.RWMutex
	curves   []*Curve
	profiles []*ProfileSeries
	flushed  atomic.Uint64
	lastT    float64
}

// NewGroup creates buffers for the named probes and profiles
func NewGroup(probes, profiles []string, lifespan float64) *Group {
	g := &Group{}
	for _, name := range probes {
		g.curves = append(g.curves, NewCurve(name, lifespan))
	}
	for _, name := range profiles {
		g.profiles = append(g.profiles, NewProfileSeries(name, lifespan))
	}
	return g
}

func (g *Group) PushValue(probe int, t, v float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if probe >= 0 && probe < len(g.curves) {
		g.curves[probe].Push(t, v)
	}
}

func (g *Group) PushProfile(profile int, t float64, bins map[int]float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if profile >= 0 && profile < len(g.profiles) {
		g.profiles[profile].Push(t, bins)
	}
}

// Flush marks buffered samples as ready for display
func (g *Group) Flush(t float64) {
	g.mu.Lock()
	g.lastT = t
	g.mu.Unlock()
	g.flushed.Add(1)
}

// Version increments on every Flush; viewers redraw charts when it changes
func (g *Group) Version() uint64 {
	return g.flushed.Load()
}

// View runs fn with read access to the buffers
func (g *Group) View(fn func(curves []*Curve, profiles []*ProfileSeries, flushedAt float64)) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	fn(g.curves, g.profiles, g.lastT)
}

// Clear drops all samples, keeping the buffer layout
func (g *Group) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.curves {
		c.Clear()
	}
	for i, p := range g.profiles {
		g.profiles[i] = NewProfileSeries(p.Name, p.lifespan)
	}
	g.lastT = 0
}

// Multi fans samples out to several sinks
type Multi []Sink

func (m Multi) PushValue(probe int, t, v float64) {
	for _, s := range m {
		s.PushValue(probe, t, v)
	}
}

func (m Multi) PushProfile(profile int, t float64, bins map[int]float64) {
	for _, s := range m {
		s.PushProfile(profile, t, bins)
	}
}

func (m Multi) Flush(t float64) {
	for _, s := range m {
		s.Flush(t)
	}
}

// Discard is a Sink that drops everything
var Discard Sink = discard{}

type discard struct{}

func (discard) PushValue(int, float64, float64)           {}
func (discard) PushProfile(int, float64, map[int]float64) {}
func (discard) Flush(float64)                             {}
