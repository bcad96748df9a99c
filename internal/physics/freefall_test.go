package physics

import (
	"math"
	"testing"
)

func TestFreeFallPositionClosedForm(t *testing.T) {
	tests := []struct {
		h0, v0 float64
	}{
		{50, 0},
		{10, 3},
		{100, -12},
		{0, 0},
	}

	for _, tt := range tests {
		ff := NewFreeFall(tt.h0, tt.v0)
		for _, tm := range []float64{0, 0.05, 1, 2.5, 7} {
			expected := tt.h0 - (tt.v0*tm + 0.5*Gravity*tm*tm)
			if got := ff.PositionAt(tm); got != expected {
				t.Errorf("h0=%.1f v0=%.1f t=%.2f: expected %f, got %f", tt.h0, tt.v0, tm, expected, got)
			}
		}
	}
}

func TestFreeFallVelocity(t *testing.T) {
	ff := NewFreeFall(20, -4)

	if got := ff.VelocityAt(0); got != -4 {
		t.Errorf("expected initial velocity -4, got %f", got)
	}
	if got := ff.VelocityAt(2); math.Abs(got-(-4+2*Gravity)) > 1e-12 {
		t.Errorf("expected %f, got %f", -4+2*Gravity, got)
	}
}

func TestFreeFallDistanceNeverNegative(t *testing.T) {
	// a toss climbs first, so the raw difference is negative early on
	ff := NewFreeFall(10, -10)

	if got := ff.DistanceTravelled(0.2); got != 0 {
		t.Errorf("expected clamped distance 0 while climbing, got %f", got)
	}
	if got := ff.DistanceTravelled(3); got <= 0 {
		t.Errorf("expected positive distance after falling back, got %f", got)
	}
}

func TestFreeFallTimeToGround(t *testing.T) {
	ff := NewFreeFall(50, 0)

	tg := ff.TimeToGround()
	if math.Abs(tg-3.193) > 1e-2 {
		t.Errorf("expected ~3.193s, got %f", tg)
	}
	if v := ff.ImpactVelocity(); math.Abs(v-31.32) > 1e-2 {
		t.Errorf("expected ~31.32 m/s, got %f", v)
	}
}

func TestFreeFallAtGround(t *testing.T) {
	ff := NewFreeFall(0, 0)

	if tg := ff.TimeToGround(); tg != 0 {
		t.Errorf("expected 0, got %f", tg)
	}
	if v := ff.ImpactVelocity(); v != 0 {
		t.Errorf("expected 0, got %f", v)
	}

	// already at ground and moving down
	if tg := NewFreeFall(0, 5).TimeToGround(); tg != 0 {
		t.Errorf("expected 0 for downward start at ground, got %f", tg)
	}
	// at ground but thrown upwards: comes back later
	if tg := NewFreeFall(0, -5).TimeToGround(); tg <= 0 {
		t.Errorf("expected positive time for upward toss, got %f", tg)
	}
}

func TestFreeFallRootLandsOnGround(t *testing.T) {
	for _, h0 := range []float64{0.5, 3, 50, 1000} {
		for _, v0 := range []float64{-30, -1, 0, 2, 25} {
			ff := NewFreeFall(h0, v0)
			tg := ff.TimeToGround()
			if tg == Never {
				t.Errorf("h0=%.1f v0=%.1f: unexpected Never", h0, v0)
				continue
			}
			if y := ff.PositionAt(tg); math.Abs(y) > 1e-9*math.Max(1, h0) {
				t.Errorf("h0=%.1f v0=%.1f: position at root = %g", h0, v0, y)
			}
		}
	}
}

func TestFreeFallNeverWithNegativeDiscriminant(t *testing.T) {
	// a negative height makes the discriminant negative for small speeds
	ff := NewFreeFall(-10, 0)
	if tg := ff.TimeToGround(); tg != Never {
		t.Errorf("expected Never, got %f", tg)
	}
}

func TestFreeFallImpactVelocitySquared(t *testing.T) {
	for _, h0 := range []float64{0, 1, 12.5, 300} {
		for _, v0 := range []float64{-8, 0, 4} {
			v := NewFreeFall(h0, v0).ImpactVelocity()
			expected := v0*v0 + 2*Gravity*h0
			if math.Abs(v*v-expected) > 1e-9*math.Max(1, expected) {
				t.Errorf("h0=%.1f v0=%.1f: v²=%f, expected %f", h0, v0, v*v, expected)
			}
			if v < 0 {
				t.Errorf("impact velocity must be non-negative, got %f", v)
			}
		}
	}
}

func TestFreeFallEnergyConserved(t *testing.T) {
	ff := NewFreeFall(40, -3)
	e0 := ff.Energy(0)
	for _, tm := range []float64{0.5, 1, 2} {
		if e := ff.Energy(tm); math.Abs(e-e0) > 1e-9 {
			t.Errorf("energy drifted at t=%.1f: %f vs %f", tm, e, e0)
		}
	}
}
