package core

import "github.com/chewxy/math32"

// Interval is a range of float32 values between Min and Max
type Interval struct {
	Min, Max float32
}

var (
	// EmptyInterval contains no values
	EmptyInterval = Interval{Min: math32.Inf(1), Max: math32.Inf(-1)}
	// UniverseInterval contains every value
	UniverseInterval = Interval{Min: math32.Inf(-1), Max: math32.Inf(1)}
)

// NewInterval creates a new interval
func NewInterval(min, max float32) Interval {
	return Interval{Min: min, Max: max}
}

// Size returns Max - Min
func (i Interval) Size() float32 {
	return i.Max - i.Min
}

// Contains reports whether x lies in the closed interval [Min, Max]
func (i Interval) Contains(x float32) bool {
	return i.Min <= x && x <= i.Max
}

// Surrounds reports whether x lies in the open interval (Min, Max)
func (i Interval) Surrounds(x float32) bool {
	return i.Min < x && x < i.Max
}

// Clamp saturates x to [Min, Max]
func (i Interval) Clamp(x float32) float32 {
	if x < i.Min {
		return i.Min
	}
	if x > i.Max {
		return i.Max
	}
	return x
}
