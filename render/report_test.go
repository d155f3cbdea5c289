package render

import (
	"math"
	"strings"
	"testing"

	"github.com/lixenwraith/collisions/config"
	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/engine"
	"github.com/lixenwraith/collisions/stats"
)

// TestSummary_Demo verifies the summary names every population
func TestSummary_Demo(t *testing.T) {
	cfg := config.Demo()
	s, err := engine.NewState(cfg)
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	s.PlayUntil(core.At(0.5))

	out := Summary(s)
	for _, want := range []string{"demo", "cold", "hot", "collisions", "pressure"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in summary", want)
		}
	}
}

// TestPlots_SkipsShortCurves verifies that curves with fewer than two finite points are not drawn
func TestPlots_SkipsShortCurves(t *testing.T) {
	g := stats.NewGroup([]string{"flat", "empty"}, nil, 100)
	g.PushValue(0, 1, 1)
	g.PushValue(0, 2, 2)
	g.PushValue(0, 3, 3)
	g.PushValue(1, 1, math.NaN())

	charts := Charts(g, 20, 3)
	if len(charts) != 1 {
		t.Fatalf("Expected 1 chart, got %d", len(charts))
	}
	if !strings.Contains(Plots(g, 20, 3), "flat") {
		t.Error("Expected caption in plot output")
	}
	if Plot("none", []float64{math.NaN()}, 10, 2) != "" {
		t.Error("Expected empty plot for NaN-only series")
	}
}
