// Package calc answers one-off questions about a motion without starting a
// simulation. Nothing here touches a driver.
package calc

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/kinelab/internal/physics"
)

var (
	// ErrNeverReachesGround is the free-fall no-solution case.
	ErrNeverReachesGround = errors.New("calc: the object never reaches the ground")

	// ErrMovingAway is the uniform-motion no-solution case.
	ErrMovingAway = errors.New("calc: the object is moving away from the target")

	// ErrZeroVelocity means a body at rest was asked to travel.
	ErrZeroVelocity = errors.New("calc: velocity cannot be zero")

	// ErrInvalidDuration means a non-positive duration.
	ErrInvalidDuration = errors.New("calc: duration must be greater than zero")

	// ErrInvalidHeight means a negative or non-finite starting height.
	ErrInvalidHeight = errors.New("calc: height must be zero or positive")

	// ErrNotFinite means a NaN or infinite input.
	ErrNotFinite = errors.New("calc: value must be a finite number")
)

// requireFinite returns ErrNotFinite naming the first non-finite value.
func requireFinite(names []string, values ...float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s", ErrNotFinite, names[i])
		}
	}
	return nil
}

// IsNoSolution reports whether err means the question has no physical answer,
// as opposed to bad input.
func IsNoSolution(err error) bool {
	return errors.Is(err, ErrNeverReachesGround) || errors.Is(err, ErrMovingAway)
}

type GroundResult struct {
	Time        float64
	ImpactSpeed float64
}

// TimeToGround returns when and how fast a body dropped from height with
// the given downward velocity hits the ground.
func TimeToGround(height, velocity float64) (GroundResult, error) {
	if math.IsNaN(height) || math.IsInf(height, 0) || height < 0 {
		return GroundResult{}, ErrInvalidHeight
	}
	if err := requireFinite([]string{"velocity"}, velocity); err != nil {
		return GroundResult{}, err
	}
	ff := physics.NewFreeFall(height, velocity)
	t := ff.TimeToGround()
	if t == physics.Never {
		return GroundResult{}, ErrNeverReachesGround
	}
	return GroundResult{
		Time:        t,
		ImpactSpeed: math.Abs(ff.VelocityAt(t)),
	}, nil
}

// TimeToReach returns how long a body moving at velocity needs from start to
// target. Negative travel times are rejected as ErrMovingAway.
func TimeToReach(start, target, velocity float64) (float64, error) {
	if err := requireFinite([]string{"start", "target", "velocity"}, start, target, velocity); err != nil {
		return 0, err
	}
	if velocity == 0 {
		return 0, ErrZeroVelocity
	}
	t := physics.NewUniform(start, velocity).TimeToReach(target)
	if math.IsInf(t, 0) || math.IsNaN(t) {
		return 0, ErrZeroVelocity
	}
	if t < 0 {
		return 0, ErrMovingAway
	}
	return t, nil
}

// RequiredVelocity returns the velocity covering start→target in duration.
func RequiredVelocity(start, target, duration float64) (float64, error) {
	if err := requireFinite([]string{"start", "target", "duration"}, start, target, duration); err != nil {
		return 0, err
	}
	if duration <= 0 {
		return 0, ErrInvalidDuration
	}
	v, err := physics.RequiredVelocity(start, target, duration)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDuration, err)
	}
	return v, nil
}
