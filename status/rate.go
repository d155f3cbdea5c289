package status

import (
	"sync"
	"time"
)

// Rate measures events per second over a sliding window
type Rate struct {
	mu     sync.Mutex
	window time.Duration
	marks  []mark
}

type mark struct {
	at    time.Time
	total uint64
}

// NewRate creates a meter averaging over window
func NewRate(window time.Duration) *Rate {
	return &Rate{window: window}
}

// Mark records the running total at the given instant
func (r *Rate) Mark(at time.Time, total uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.marks = append(r.marks, mark{at: at, total: total})
	cut := 0
	for cut < len(r.marks)-2 && at.Sub(r.marks[cut+1].at) >= r.window {
		cut++
	}
	r.marks = r.marks[cut:]
}

// PerSecond returns the growth of the total per second across the window
// Zero until two marks exist or after the total was reset
func (r *Rate) PerSecond() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.marks) < 2 {
		return 0
	}
	first, last := r.marks[0], r.marks[len(r.marks)-1]
	elapsed := last.at.Sub(first.at).Seconds()
	if elapsed <= 0 || last.total < first.total {
		return 0
	}
	return float64(last.total-first.total) / elapsed
}

// Reset forgets all marks
func (r *Rate) Reset() {
	r.mu.Lock()
	r.marks = r.marks[:0]
	r.mu.Unlock()
}
