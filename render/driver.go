package render

import (
	"context"
	"log/slog"
	"time"

	"github.com/lixenwraith/collisions/engine"
	"github.com/lixenwraith/collisions/parameter"
	"github.com/lixenwraith/collisions/stats"
	"github.com/lixenwraith/collisions/status"
)

// Command is a viewer request to the driver
type Command uint8

const (
	CommandPause Command = iota
	CommandRestart
	CommandFaster
	CommandSlower
)

// Driver owns the simulation on its own goroutine and hands out snapshots
// Snapshots cycle through a small pool so steady-state frames do not allocate
type Driver struct {
	state    *engine.State
	group    *stats.Group
	registry *status.Registry
	logger   *slog.Logger

	frames   chan *engine.Snapshot
	free     chan *engine.Snapshot
	commands chan Command

	speed  int // Draw frames per tick
	paused bool
	cps    *status.Rate
	fps    *status.Rate
	drawn  uint64
}

// NewDriver wraps a state; group may be nil when no charts are shown
func NewDriver(state *engine.State, group *stats.Group, registry *status.Registry, logger *slog.Logger) *Driver {
	d := &Driver{
		state:    state,
		group:    group,
		registry: registry,
		logger:   logger,
		frames:   make(chan *engine.Snapshot, 1),
		free:     make(chan *engine.Snapshot, 3),
		commands: make(chan Command, 8),
		speed:    1,
		cps:      status.NewRate(parameter.RateWindow),
		fps:      status.NewRate(parameter.RateWindow),
	}
	for range cap(d.free) {
		d.free <- &engine.Snapshot{}
	}
	return d
}

// Frames delivers the latest snapshot; receivers must Release it after drawing
func (d *Driver) Frames() <-chan *engine.Snapshot {
	return d.frames
}

// Release returns a drawn snapshot to the pool
func (d *Driver) Release(s *engine.Snapshot) {
	select {
	case d.free <- s:
	default:
	}
}

// Send queues a command; dropped when the driver is saturated
func (d *Driver) Send(c Command) {
	select {
	case d.commands <- c:
	default:
	}
}

// Run advances the simulation once per frame interval until ctx ends
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()
	d.publish(time.Now())

	for {
		select {
		case <-ctx.Done():
			return nil
		case c := <-d.commands:
			if err := d.apply(c); err != nil {
				return err
			}
		case now := <-ticker.C:
			if !d.paused {
				d.tick()
			}
			d.publish(now)
		}
	}
}

func (d *Driver) apply(c Command) error {
	switch c {
	case CommandPause:
		d.paused = !d.paused
	case CommandRestart:
		if d.group != nil {
			d.group.Clear()
		}
		d.cps.Reset()
		if err := d.state.Restart(); err != nil {
			return err
		}
		d.logger.Info("simulation restarted")
	case CommandFaster:
		d.speed = min(d.speed*2, parameter.MaxFramesPerTick)
	case CommandSlower:
		d.speed = max(d.speed/2, 1)
	}
	d.registry.Int(status.KeySpeed).Store(int64(d.speed))
	d.registry.Int(status.KeyPaused).Store(boolInt(d.paused))
	return nil
}

// tick plays up to speed draw frames
func (d *Driver) tick() {
	for range d.speed {
		if !d.state.PlayToNextDraw() {
			d.paused = true
			d.logger.Warn("event queue empty, pausing")
			return
		}
		d.drawn++
	}
}

// publish updates the registry and offers a fresh snapshot, replacing an undrawn one
func (d *Driver) publish(now time.Time) {
	c := d.state.Counters()
	d.cps.Mark(now, c.Collisions)
	d.fps.Mark(now, d.drawn)

	r := d.registry
	r.Float(status.KeyTime).Set(d.state.Now().Seconds())
	r.Int(status.KeyCollisions).Store(int64(c.Collisions))
	r.Int(status.KeyCrossings).Store(int64(c.Crossings))
	r.Int(status.KeyEvents).Store(int64(c.Events))
	r.Int(status.KeyMutations).Store(int64(c.Mutations))
	r.Int(status.KeyReactions).Store(int64(c.Reactions))
	r.Int(status.KeyPredictions).Store(int64(c.Predictions))
	r.Int(status.KeyQueued).Store(int64(d.state.Queued()))
	r.Int(status.KeyParticles).Store(int64(len(d.state.Particles())))
	r.Float(status.KeyRateCPS).Set(d.cps.PerSecond())
	r.Float(status.KeyRateFPS).Set(d.fps.PerSecond())

	// Only the driver sends, so taking back an undrawn frame guarantees room
	var snap *engine.Snapshot
	select {
	case snap = <-d.frames:
	default:
		select {
		case snap = <-d.free:
		default:
			snap = &engine.Snapshot{}
		}
	}
	d.frames <- d.state.Snapshot(snap)
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
