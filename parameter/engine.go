package parameter

import "time"

// Frame & Viewer Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// RateWindow is the sliding window for frame and collision rates
	RateWindow = 2 * time.Second

	// MaxFramesPerTick bounds simulation frames advanced per viewer tick
	MaxFramesPerTick = 8
)

// Periodic event defaults, in simulation time units
const (
	// DefaultStepDraw is the interval between drawable frames
	DefaultStepDraw = 0.01

	// DefaultStepValue is the interval between probe samples
	DefaultStepValue = 1.0

	// DefaultStepChart is the interval between chart pushes
	DefaultStepChart = 10.0

	// DefaultLifespan is the time window kept by chart buffers
	DefaultLifespan = 500.0
)
