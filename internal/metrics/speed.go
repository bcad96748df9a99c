package metrics

import (
	"math"

	"github.com/san-kum/kinelab/internal/telemetry"
)

type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(s telemetry.Snapshot) {
	p.peak = math.Max(p.peak, math.Abs(s.Velocity))
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }

// Duration is the simulated time of the last snapshot seen.
type Duration struct {
	name    string
	elapsed float64
}

func NewDuration() *Duration {
	return &Duration{name: "duration"}
}

func (d *Duration) Name() string { return d.name }

func (d *Duration) Observe(s telemetry.Snapshot) { d.elapsed = s.Elapsed }

func (d *Duration) Value() float64 { return d.elapsed }

func (d *Duration) Reset() { d.elapsed = 0 }
