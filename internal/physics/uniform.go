package physics

import (
	"fmt"
	"math"
)

// Uniform models rectilinear motion at a constant, signed velocity.
type Uniform struct {
	start    float64
	velocity float64
}

func NewUniform(start, velocity float64) Uniform {
	return Uniform{start: start, velocity: velocity}
}

func (u Uniform) Start() float64    { return u.start }
func (u Uniform) Velocity() float64 { return u.velocity }

func (u Uniform) PositionAt(t float64) float64 {
	return u.start + u.velocity*t
}

func (u Uniform) DisplacementAt(t float64) float64 {
	return u.PositionAt(t) - u.start
}

// TimeToReach returns (target − x0)/v, or +Inf for a body at rest. A
// negative result means the body is moving away from target; callers decide
// what to make of it.
func (u Uniform) TimeToReach(target float64) float64 {
	if u.velocity == 0 {
		return math.Inf(1)
	}
	return (target - u.start) / u.velocity
}

// RequiredVelocity is the constant velocity that covers start→target in
// duration seconds.
func RequiredVelocity(start, target, duration float64) (float64, error) {
	if duration <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %f", duration)
	}
	return (target - start) / duration, nil
}
