package metrics

import (
	"math"

	"github.com/san-kum/kinelab/internal/physics"
	"github.com/san-kum/kinelab/internal/telemetry"
)

// EnergyDrift tracks the largest relative deviation of the specific
// mechanical energy shown to the user from the energy of the model at t=0.
// The closed-form law conserves energy exactly, so any drift comes from the
// ground clamp on the impact tick.
type EnergyDrift struct {
	name      string
	gravity   float64
	reference float64
	maxDrift  float64
}

func NewEnergyDrift(model physics.FreeFall) *EnergyDrift {
	return &EnergyDrift{
		name:      "energy_drift",
		gravity:   model.Gravity(),
		reference: model.Energy(0),
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s telemetry.Snapshot) {
	if s.Motion != telemetry.FreeFall || e.reference == 0 {
		return
	}
	energy := 0.5*s.Velocity*s.Velocity + e.gravity*s.Position
	drift := math.Abs(energy-e.reference) / math.Abs(e.reference)
	e.maxDrift = math.Max(e.maxDrift, drift)
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() { e.maxDrift = 0 }
