// Package stats holds probe definitions, chart buffers and the sink interface fed by the engine
package stats

import "fmt"

// Quantity selects the per-mobile value a probe sums
type Quantity uint8

const (
	QuantityNone Quantity = iota
	QuantityPosX
	QuantityPosY // Negated so that up is positive on screen-oriented scenes
	QuantityVelX
	QuantityVelY // Negated like QuantityPosY
	QuantitySpeed
	QuantitySpeed2
	QuantityEnergy
	QuantityFreeRide
	QuantityFreeTime
	QuantityFromOrigin
	QuantityFromOrigin2
	QuantityCount
)

var quantityNames = [...]string{
	QuantityNone:        "none",
	QuantityPosX:        "pos_x",
	QuantityPosY:        "pos_y",
	QuantityVelX:        "vel_x",
	QuantityVelY:        "vel_y",
	QuantitySpeed:       "speed",
	QuantitySpeed2:      "speed2",
	QuantityEnergy:      "energy",
	QuantityFreeRide:    "free_ride",
	QuantityFreeTime:    "free_time",
	QuantityFromOrigin:  "from_origin",
	QuantityFromOrigin2: "from_origin2",
	QuantityCount:       "count",
}

func (q Quantity) String() string {
	if int(q) < len(quantityNames) {
		return quantityNames[q]
	}
	return fmt.Sprintf("quantity(%d)", q)
}

// MarshalText implements encoding.TextMarshaler
func (q Quantity) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (q *Quantity) UnmarshalText(text []byte) error {
	for i, name := range quantityNames {
		if name == string(text) {
			*q = Quantity(i)
			return nil
		}
	}
	return fmt.Errorf("unknown quantity %q", text)
}

// PistonDefined reports whether a piston can produce this quantity
func (q Quantity) PistonDefined() bool {
	switch q {
	case QuantityPosX, QuantityPosY, QuantityVelX, QuantityVelY,
		QuantitySpeed, QuantitySpeed2, QuantityEnergy, QuantityCount:
		return true
	}
	return false
}

// ProfileKind selects the per-particle value a profile bins
type ProfileKind uint8

const (
	ProfileEnergy ProfileKind = iota
	ProfileCount
)

func (k ProfileKind) String() string {
	if k == ProfileCount {
		return "count"
	}
	return "energy"
}

// MarshalText implements encoding.TextMarshaler
func (k ProfileKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *ProfileKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "energy":
		*k = ProfileEnergy
	case "count":
		*k = ProfileCount
	default:
		return fmt.Errorf("unknown profile kind %q", text)
	}
	return nil
}
