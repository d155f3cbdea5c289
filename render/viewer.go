package render

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/guptarohit/asciigraph"

	"github.com/lixenwraith/collisions/audio"
	"github.com/lixenwraith/collisions/core"
	"github.com/lixenwraith/collisions/engine"
	"github.com/lixenwraith/collisions/stats"
	"github.com/lixenwraith/collisions/status"
	"github.com/lixenwraith/collisions/vmath"
)

const (
	panelWidth  = 44
	chartHeight = 5
)

// Viewer draws driver snapshots on a terminal and forwards key presses as commands
type Viewer struct {
	screen   tcell.Screen
	driver   *Driver
	group    *stats.Group
	registry *status.Registry
	sound    *audio.Sonifier

	canvas     *Canvas
	lastCounts uint64
	chartAt    uint64
	charts     []string
}

// NewViewer initializes the terminal; sound may be nil
func NewViewer(driver *Driver, group *stats.Group, registry *status.Registry, sound *audio.Sonifier) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return &Viewer{
		screen:   screen,
		driver:   driver,
		group:    group,
		registry: registry,
		sound:    sound,
	}, nil
}

// Close restores the terminal
func (v *Viewer) Close() {
	v.screen.Fini()
}

// Run draws frames until the user quits or ctx ends; cancel stops the driver
func (v *Viewer) Run(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()

	events := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if !v.handleInput(ev) {
				return
			}
		case snap := <-v.driver.Frames():
			v.draw(snap)
			v.driver.Release(snap)
		}
	}
}

func (v *Viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.driver.Send(CommandPause)
			case 'r':
				v.driver.Send(CommandRestart)
				v.lastCounts = 0
			case '+', '=':
				v.driver.Send(CommandFaster)
			case '-':
				v.driver.Send(CommandSlower)
			case 'm':
				if v.sound != nil {
					v.sound.SetMuted(!v.sound.Muted())
					v.registry.Int(status.KeyMuted).Store(boolInt(v.sound.Muted()))
				}
			}
		}
	case *tcell.EventResize:
		v.canvas = nil
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) draw(snap *engine.Snapshot) {
	w, h := v.screen.Size()
	cw := max(w-panelWidth, 1)
	if v.canvas == nil || v.canvas.W != cw || v.canvas.H != h {
		v.canvas = NewCanvas(cw, h)
	}
	lo, hi := snap.Contour.Polygon.Bounds()
	if len(snap.Contour.Polygon) == 0 {
		lo, hi = particleBounds(snap)
	}
	v.canvas.Fit(lo, hi)
	v.canvas.Draw(snap)

	if v.sound != nil {
		c := snap.Counters.Collisions
		if c >= v.lastCounts {
			v.sound.Frame(time.Now(), c-v.lastCounts)
		}
		v.lastCounts = c
	}

	v.screen.Clear()
	for y := range v.canvas.H {
		for x := range v.canvas.W {
			cell := v.canvas.At(x, y)
			if cell.Rune == 0 {
				continue
			}
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(cell.Color.R), int32(cell.Color.G), int32(cell.Color.B)))
			v.screen.SetContent(x, y, cell.Rune, nil, style)
		}
	}
	v.drawPanel(cw+1, snap)
	v.screen.Show()
}

// drawPanel writes the status lines and one chart per probe
func (v *Viewer) drawPanel(x0 int, snap *engine.Snapshot) {
	label := tcell.StyleDefault.Foreground(tcell.ColorGray)
	value := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	y := 0
	line := func(k, val string) {
		v.text(x0, y, fmt.Sprintf("%-12s", k), label)
		v.text(x0+12, y, val, value)
		y++
	}
	r := v.registry
	line("time", fmt.Sprintf("%.3f", snap.Time.Seconds()))
	line("particles", fmt.Sprint(len(snap.Particles)))
	line("collisions", fmt.Sprint(snap.Counters.Collisions))
	line("coll/s", fmt.Sprintf("%.0f", r.Float(status.KeyRateCPS).Get()))
	line("fps", fmt.Sprintf("%.1f", r.Float(status.KeyRateFPS).Get()))
	line("queued", fmt.Sprint(snap.Queued))
	line("speed", fmt.Sprintf("x%d", max(r.Int(status.KeySpeed).Load(), 1)))
	if r.Int(status.KeyPaused).Load() != 0 {
		line("", "paused")
	}
	y++

	if v.group != nil {
		if version := v.group.Version(); version != v.chartAt || v.charts == nil {
			v.charts = Charts(v.group, panelWidth-10, chartHeight)
			v.chartAt = version
		}
		for _, chart := range v.charts {
			for _, row := range strings.Split(chart, "\n") {
				v.text(x0, y, row, value)
				y++
			}
		}
	}
	v.text(x0, y+1, "space pause  r restart  +/- speed  m mute  q quit", label)
}

func (v *Viewer) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Charts renders every probe curve holding at least two points
func Charts(g *stats.Group, width, height int) []string {
	var out []string
	g.View(func(curves []*stats.Curve, _ []*stats.ProfileSeries, _ float64) {
		for _, c := range curves {
			values := finite(c.Values())
			if len(values) < 2 {
				continue
			}
			out = append(out, asciigraph.Plot(values,
				asciigraph.Width(width),
				asciigraph.Height(height),
				asciigraph.Caption(c.Name),
			))
		}
	})
	return out
}

func finite(values []float64) []float64 {
	out := values[:0:0]
	for _, v := range values {
		if v == v {
			out = append(out, v)
		}
	}
	return out
}

func particleBounds(snap *engine.Snapshot) (lo, hi vmath.Vec) {
	if len(snap.Particles) == 0 {
		return vmath.Vec{}, vmath.Vec{X: 1, Y: 1}
	}
	lo, hi = snap.Particles[0].Pos, snap.Particles[0].Pos
	for _, p := range snap.Particles[1:] {
		lo, hi = lo.Min(p.Pos), hi.Max(p.Pos)
	}
	return lo, hi
}
