package core

// ID identifies a mobile within one simulation state
// Assigned monotonically at creation, never reused
type ID uint32

// NoID marks an absent mobile reference
const NoID ID = ^ID(0)
