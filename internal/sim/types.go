package sim

import (
	"time"

	"github.com/san-kum/kinelab/internal/telemetry"
	"github.com/san-kum/kinelab/internal/viewport"
)

const (
	// TimeStep is the simulated time added by every tick.
	TimeStep = 0.05

	FreeFallInterval = 25 * time.Millisecond
	UniformInterval  = 40 * time.Millisecond
)

type State int

const (
	Idle State = iota
	Running
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Session is the mutable part of one run. A new Session replaces the old one
// on every start.
type Session struct {
	Elapsed  float64
	Total    float64
	Running  bool
	Viewport viewport.Viewport
}

// Driver is the part of a simulation driver a tick source needs.
type Driver interface {
	Motion() telemetry.Motion
	Interval() time.Duration
	// Step advances the session by one tick and reports whether the driver
	// still wants ticks.
	Step() bool
	Stop()
	State() State
	Session() Session
}

type FreeFallParams struct {
	Height   float64
	Velocity float64
}

// UniformParams describes a uniform run. A zero Velocity means "derive it
// from Target and Duration".
type UniformParams struct {
	Start    float64
	Velocity float64
	Target   *float64
	Duration float64
}
