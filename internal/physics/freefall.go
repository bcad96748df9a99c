package physics

import "math"

// Gravity is the standard gravitational acceleration in m/s².
const Gravity = 9.81

// Never marks a time that does not exist, e.g. a body that never reaches the
// ground.
const Never = -1.0

// FreeFall models a body released from Height metres with an initial
// velocity. Velocity is positive downwards, so a negative value is a toss.
type FreeFall struct {
	height   float64
	velocity float64
	gravity  float64
}

func NewFreeFall(height, velocity float64) FreeFall {
	return FreeFall{
		height:   height,
		velocity: velocity,
		gravity:  Gravity,
	}
}

func (f FreeFall) Height() float64   { return f.height }
func (f FreeFall) Velocity() float64 { return f.velocity }
func (f FreeFall) Gravity() float64  { return f.gravity }

// PositionAt returns the height above ground at t. The value goes negative
// once the body has passed the ground; display code clamps it, termination
// checks use it raw.
func (f FreeFall) PositionAt(t float64) float64 {
	return f.height - (f.velocity*t + 0.5*f.gravity*t*t)
}

func (f FreeFall) VelocityAt(t float64) float64 {
	return f.velocity + f.gravity*t
}

func (f FreeFall) DistanceTravelled(t float64) float64 {
	return math.Max(f.height-f.PositionAt(t), 0)
}

// TimeToGround solves 0.5·g·t² + v0·t − h0 = 0 and returns the later root,
// or Never when no non-negative root exists.
func (f FreeFall) TimeToGround() float64 {
	a := 0.5 * f.gravity
	b := f.velocity
	c := -f.height

	disc := b*b - 4*a*c
	if disc < 0 {
		return Never
	}

	sq := math.Sqrt(disc)
	t1 := (-b + sq) / (2 * a)
	t2 := (-b - sq) / (2 * a)
	t := math.Max(t1, t2)
	if t < 0 {
		return Never
	}
	return t
}

// ImpactVelocity is the speed at ground contact from v² = v0² + 2·g·h0.
// It does not depend on TimeToGround and serves as a cross-check.
func (f FreeFall) ImpactVelocity() float64 {
	return math.Sqrt(f.velocity*f.velocity + 2*f.gravity*f.height)
}

// Energy returns the specific mechanical energy (per unit mass) at t.
func (f FreeFall) Energy(t float64) float64 {
	v := f.VelocityAt(t)
	return 0.5*v*v + f.gravity*f.PositionAt(t)
}
