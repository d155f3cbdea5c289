package event

// EventType represents the kind of scheduled simulation event
type EventType uint8

const (
	// EventCollision is a predicted contact or area-boundary crossing
	// Payload: engine collision record
	EventCollision EventType = iota

	// EventMutation is a particle's population timer
	// Payload: particle id
	EventMutation

	// EventDraw ends a rendering frame
	EventDraw

	// EventValue samples chart probes
	EventValue

	// EventChart pushes sampled probes to sinks
	EventChart
)

var typeNames = [...]string{
	EventCollision: "collision",
	EventMutation:  "mutation",
	EventDraw:      "draw",
	EventValue:     "value",
	EventChart:     "chart",
}

func (t EventType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Periodic reports whether events of this type are rescheduled after firing
func (t EventType) Periodic() bool {
	return t >= EventDraw
}
