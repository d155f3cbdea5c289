package stats

import (
	"math"
	"slices"
)

// Frame is one profile sample: value per horizontal slice index
type Frame struct {
	T    float64
	Bins map[int]float64
}

// ProfileSeries is a lifespan-trimmed series of profile frames
type ProfileSeries struct {
	Name     string
	lifespan float64
	frames   []Frame
}

// NewProfileSeries creates an empty profile series
func NewProfileSeries(name string, lifespan float64) *ProfileSeries {
	return &ProfileSeries{Name: name, lifespan: lifespan}
}

// Push appends a frame
func (p *ProfileSeries) Push(t float64, bins map[int]float64) {
	p.frames = append(p.frames, Frame{T: t, Bins: bins})
	if p.lifespan <= 0 {
		return
	}
	cut := 0
	for cut < len(p.frames) && p.frames[cut].T < t-p.lifespan {
		cut++
	}
	if cut > 0 {
		p.frames = append(p.frames[:0], p.frames[cut:]...)
	}
}

// Frames returns retained frames, oldest first; callers must not modify
func (p *ProfileSeries) Frames() []Frame {
	return p.frames
}

// Last returns the newest frame
func (p *ProfileSeries) Last() (Frame, bool) {
	if len(p.frames) == 0 {
		return Frame{}, false
	}
	return p.frames[len(p.frames)-1], true
}

// SliceRange returns the lowest and highest slice index present in any frame
func (p *ProfileSeries) SliceRange() (lo, hi int, ok bool) {
	for _, f := range p.frames {
		for k := range f.Bins {
			if !ok {
				lo, hi, ok = k, k, true
				continue
			}
			lo, hi = min(lo, k), max(hi, k)
		}
	}
	return lo, hi, ok
}

// Max returns the largest binned value, NaN when empty
func (p *ProfileSeries) Max() float64 {
	m := math.NaN()
	for _, f := range p.frames {
		for _, v := range f.Bins {
			if math.IsNaN(m) || v > m {
				m = v
			}
		}
	}
	return m
}

// Bin accumulates per-slice sums and counts for one profile frame
type Bin struct {
	slice  float64
	sums   map[int]float64
	counts map[int]int
}

// NewBin starts a frame for slices of the given height
func NewBin(slice float64) *Bin {
	return &Bin{slice: slice, sums: map[int]float64{}, counts: map[int]int{}}
}

// Add records value v at height y
func (b *Bin) Add(y, v float64) {
	k := int(math.Floor(y / b.slice))
	b.sums[k] += v
	b.counts[k]++
}

// Result returns the sums, or the per-slice means when mean is set
func (b *Bin) Result(mean bool) map[int]float64 {
	out := make(map[int]float64, len(b.sums))
	for k, v := range b.sums {
		if mean {
			v /= float64(b.counts[k])
		}
		out[k] = v
	}
	return out
}

// SortedKeys returns the slice indices of bins in ascending order
func SortedKeys(bins map[int]float64) []int {
	keys := make([]int, 0, len(bins))
	for k := range bins {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
