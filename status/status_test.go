package status

import (
	"testing"
	"time"
)

// TestRegistry_Lookup verifies pointers are stable and Range is ordered
func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()
	r.Int(KeyCollisions).Add(3)
	r.Int(KeyCollisions).Add(2)
	r.Float(KeyRateFPS).Set(59.5)

	if got := r.Int(KeyCollisions).Load(); got != 5 {
		t.Errorf("Expected 5, got %d", got)
	}
	if r.Count() != 2 {
		t.Errorf("Expected 2 metrics, got %d", r.Count())
	}

	var keys []string
	r.Range(func(key string, value float64) { keys = append(keys, key) })
	if len(keys) != 2 || keys[0] != KeyCollisions || keys[1] != KeyRateFPS {
		t.Errorf("Unexpected range order %v", keys)
	}
}

// TestRate_Window verifies the rate over marks and window trimming
func TestRate_Window(t *testing.T) {
	tests := []struct {
		name  string
		marks []uint64 // One mark per second
		want  float64
	}{
		{"empty", nil, 0},
		{"single", []uint64{10}, 0},
		{"steady", []uint64{0, 100, 200}, 100},
		{"trimmed", []uint64{0, 0, 0, 0, 50, 100}, 50},
		{"reset total", []uint64{100, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRate(2 * time.Second)
			start := time.Unix(0, 0)
			for i, total := range tt.marks {
				r.Mark(start.Add(time.Duration(i)*time.Second), total)
			}
			if got := r.PerSecond(); got != tt.want {
				t.Errorf("Expected %g, got %g", tt.want, got)
			}
		})
	}
}
