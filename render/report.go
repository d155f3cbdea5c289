package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/lixenwraith/collisions/engine"
	"github.com/lixenwraith/collisions/stats"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(12).Align(lipgloss.Right)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

// Summary formats the counters and per-population aggregates of a finished run
func Summary(s *engine.State) string {
	c := s.Counters()
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s  t=%.3f", scenarioName(s), s.Now().Seconds())))
	b.WriteString("\n")
	rows := [][2]string{
		{"collisions", fmt.Sprint(c.Collisions)},
		{"crossings", fmt.Sprint(c.Crossings)},
		{"predictions", fmt.Sprint(c.Predictions)},
		{"pair tests", fmt.Sprint(c.PairTests)},
		{"events", fmt.Sprint(c.Events)},
		{"ticks", fmt.Sprint(c.Ticks)},
		{"mutations", fmt.Sprint(c.Mutations)},
		{"reactions", fmt.Sprint(c.Reactions)},
	}
	b.WriteString(panelStyle.Render(table(rows)))

	var pops []string
	for i := range s.Populations() {
		st := s.PopulationStats(i)
		name := s.Population(i).Config.Name
		if name == "" {
			name = fmt.Sprintf("population %d", i)
		}
		body := table([][2]string{
			{"count", fmt.Sprint(st.Count)},
			{"mean speed", number(st.MeanSpeed)},
			{"mean energy", number(st.MeanEnergy)},
			{"total energy", number(st.TotalEnergy)},
			{"free ride", number(st.MeanFreeRide)},
			{"free time", number(st.MeanFreeTime)},
			{"pressure", number(st.Pressure)},
			{"from origin", number(st.MeanFromOrigin)},
		})
		pops = append(pops, panelStyle.Render(headerStyle.Render(name)+"\n"+body))
	}
	if len(pops) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, pops...))
	}
	return b.String()
}

// Plots renders every non-empty probe curve of the group
func Plots(g *stats.Group, width, height int) string {
	var out []string
	for _, chart := range Charts(g, width, height) {
		out = append(out, graphStyle.Render(chart))
	}
	return strings.Join(out, "\n")
}

// Plot renders one series; exported for the CLI's profile output
func Plot(name string, values []float64, width, height int) string {
	values = finite(values)
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(values, asciigraph.Width(width), asciigraph.Height(height), asciigraph.Caption(name))
}

func table(rows [][2]string) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(r[0]), valueStyle.Render(r[1]))
	}
	return strings.Join(lines, "\n")
}

func number(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.4g", v)
}

func scenarioName(s *engine.State) string {
	if name := s.Config().Name; name != "" {
		return name
	}
	return "scenario"
}
