package parameter

// Broad phase
const (
	// SizeAreaFactor scales the largest particle radius into the grid cell size
	// 2.5 keeps every possible contact inside the 3x3 neighbourhood
	SizeAreaFactor = 2.5

	// DefaultSizeArea is used when no population defines a radius
	DefaultSizeArea = 1.0
)

// Population setup
const (
	// MaxPlacementAttempts bounds rejection sampling per particle
	MaxPlacementAttempts = 100000

	// FreePathValidRatio is the share of members needing a complete free path before means are reported
	FreePathValidRatio = 0.9
)

// Consistency checks
const (
	// CellTolerance is the slack allowed when a particle sits exactly on a cell edge
	CellTolerance = 1e-9
)
