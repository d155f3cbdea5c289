package core

import (
	"math"
	"strconv"
)

// Time is a simulation instant; the never flag marks an unreachable future
// Zero value is the finite instant 0
type Time struct {
	value float64
	never bool
}

// Never is the time of an event that will not happen
var Never = Time{never: true}

// At returns a finite instant, or Never when t is NaN or infinite
func At(t float64) Time {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return Never
	}
	return Time{value: t}
}

// Seconds returns the clock value; Never reports +Inf
func (t Time) Seconds() float64 {
	if t.never {
		return math.Inf(1)
	}
	return t.value
}

// IsNever reports whether t is the never sentinel
func (t Time) IsNever() bool {
	return t.never
}

// Add shifts t by dt, Never absorbs
func (t Time) Add(dt float64) Time {
	if t.never {
		return Never
	}
	return At(t.value + dt)
}

// After returns the instant dt after t; a negative or undefined delay yields Never
func (t Time) After(dt float64) Time {
	if t.never || math.IsNaN(dt) || dt < 0 {
		return Never
	}
	return At(t.value + dt)
}

// Sub returns the duration t - u as a Time
// Never on either side, or u later than t, yields Never
func (t Time) Sub(u Time) Time {
	if t.never || u.never || t.value < u.value {
		return Never
	}
	return Time{value: t.value - u.value}
}

// Before reports t < u with Never greater than any finite time
func (t Time) Before(u Time) bool {
	if t.never {
		return false
	}
	if u.never {
		return true
	}
	return t.value < u.value
}

// Equal requires matching flags and values
func (t Time) Equal(u Time) bool {
	if t.never || u.never {
		return t.never == u.never
	}
	return t.value == u.value
}

// Min returns the earlier of t and u
func (t Time) Min(u Time) Time {
	if u.Before(t) {
		return u
	}
	return t
}

func (t Time) String() string {
	if t.never {
		return "never"
	}
	return strconv.FormatFloat(t.value, 'g', -1, 64)
}
