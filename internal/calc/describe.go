package calc

import (
	"errors"
	"fmt"
)

const notFinite = "Please enter finite numbers."

// DescribeGround renders the result of TimeToGround for the user.
func DescribeGround(height, velocity float64) string {
	r, err := TimeToGround(height, velocity)
	switch {
	case errors.Is(err, ErrNotFinite):
		return notFinite
	case errors.Is(err, ErrNeverReachesGround):
		return "The object never reaches the ground."
	case err != nil:
		return "Please enter a height of zero or more."
	}
	return fmt.Sprintf("Time to ground: %.2f s\nImpact speed: %.2f m/s", r.Time, r.ImpactSpeed)
}

// DescribeReach renders the result of TimeToReach for the user.
func DescribeReach(start, target, velocity float64) string {
	t, err := TimeToReach(start, target, velocity)
	switch {
	case errors.Is(err, ErrNotFinite):
		return notFinite
	case errors.Is(err, ErrMovingAway):
		return fmt.Sprintf("Cannot get from x₀=%.2f m to xf=%.2f m at v=%.2f m/s.\n"+
			"The object is moving in the opposite direction.", start, target, velocity)
	case errors.Is(err, ErrZeroVelocity):
		return "Velocity cannot be zero.\nAn object at rest never reaches a different position."
	case err != nil:
		return "Calculation failed, check the values entered."
	}
	return fmt.Sprintf("Time from x₀=%.2f m to xf=%.2f m:\n%.2f s", start, target, t)
}

// DescribeVelocity renders the result of RequiredVelocity for the user.
func DescribeVelocity(start, target, duration float64) string {
	v, err := RequiredVelocity(start, target, duration)
	switch {
	case errors.Is(err, ErrNotFinite):
		return notFinite
	case err != nil:
		return "Duration must be greater than zero."
	}
	return fmt.Sprintf("v = (xf - x₀) / t\nv = (%.2f - %.2f) / %.2f\nv = %.2f m/s", target, start, duration, v)
}
