// Package components defines ECS components for the demo workload.
package components

// Position represents an entity's screen position.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's velocity in pixels per second.
type Velocity struct {
	X, Y float32
}

// Lifetime counts down an entity's remaining seconds.
type Lifetime struct {
	Remaining float32
	Total     float32
}

// Fraction returns the remaining share of the lifetime in [0, 1].
func (l Lifetime) Fraction() float32 {
	if l.Total <= 0 {
		return 0
	}
	f := l.Remaining / l.Total
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Tint is the entity's sprite color.
type Tint struct {
	R, G, B uint8
	Radius  float32
}
