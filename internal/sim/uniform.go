package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/kinelab/internal/physics"
	"github.com/san-kum/kinelab/internal/telemetry"
	"github.com/san-kum/kinelab/internal/viewport"
)

type uniformRun struct {
	Session
	model   physics.Uniform
	mapping viewport.Horizontal
	final   float64
}

// UniformDriver animates constant-velocity motion for a fixed duration.
type UniformDriver struct {
	sink  telemetry.Sink
	state State
	run   *uniformRun
	last  telemetry.Snapshot
}

func NewUniformDriver(sink telemetry.Sink) *UniformDriver {
	if sink == nil {
		sink = telemetry.Discard
	}
	return &UniformDriver{sink: sink}
}

func (d *UniformDriver) Motion() telemetry.Motion { return telemetry.Uniform }
func (d *UniformDriver) Interval() time.Duration  { return UniformInterval }
func (d *UniformDriver) State() State             { return d.state }

func (d *UniformDriver) Session() Session {
	if d.run == nil {
		return Session{}
	}
	return d.run.Session
}

func (d *UniformDriver) Model() (physics.Uniform, bool) {
	if d.run == nil {
		return physics.Uniform{}, false
	}
	return d.run.model, true
}

func (d *UniformDriver) Mapping() viewport.Horizontal {
	if d.run == nil {
		return viewport.Horizontal{}
	}
	return d.run.mapping
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// resolveUniform validates p and returns the velocity the run will use.
func resolveUniform(p UniformParams) (float64, error) {
	if !finite(p.Start) {
		return 0, invalid("start", "must be a finite number")
	}
	if !finite(p.Duration) {
		return 0, invalid("duration", "must be a finite number")
	}
	if p.Duration <= 0 {
		return 0, invalid("duration", "must be greater than zero")
	}
	if !finite(p.Velocity) {
		return 0, invalid("velocity", "must be a finite number")
	}
	if p.Target != nil && !finite(*p.Target) {
		return 0, invalid("target", "must be a finite number")
	}

	if p.Velocity == 0 {
		if p.Target == nil {
			return 0, &ParamError{
				Field:   "velocity",
				Reason:  "enter a target position to derive the velocity",
				Wrapped: ErrMissingData,
			}
		}
		v, err := physics.RequiredVelocity(p.Start, *p.Target, p.Duration)
		if err != nil {
			return 0, invalid("duration", err.Error())
		}
		return v, nil
	}

	if p.Target != nil {
		if t := physics.NewUniform(p.Start, p.Velocity).TimeToReach(*p.Target); t < 0 {
			return 0, &ParamError{
				Field:   "target",
				Reason:  fmt.Sprintf("moving at %.2f m/s away from %.2f m", p.Velocity, *p.Target),
				Wrapped: ErrUnreachable,
			}
		}
	}
	return p.Velocity, nil
}

// Start validates p, cancels any run in flight and begins a new one from
// t=0. On error nothing changes.
func (d *UniformDriver) Start(p UniformParams, vp viewport.Viewport) error {
	v, err := resolveUniform(p)
	if err != nil {
		return err
	}

	vp = vp.Resolve()
	model := physics.NewUniform(p.Start, v)
	final := model.PositionAt(p.Duration)
	if p.Target != nil {
		final = *p.Target
	}
	run := &uniformRun{
		Session: Session{
			Total:    p.Duration,
			Running:  true,
			Viewport: vp,
		},
		model:   model,
		mapping: viewport.NewHorizontal(vp.Width, p.Start, final),
		final:   final,
	}

	d.halt()
	d.run = run
	d.state = Running

	d.publish(telemetry.Snapshot{
		Motion:        telemetry.Uniform,
		Position:      p.Start,
		Velocity:      v,
		FinalPosition: final,
		Status:        "Simulation in progress…",
		Screen:        run.mapping.Screen(p.Start),
		Running:       true,
	})
	return nil
}

func (d *UniformDriver) Step() bool {
	if d.state != Running || d.run == nil {
		return false
	}
	r := d.run

	r.Elapsed += TimeStep
	if r.Elapsed > r.Total {
		r.Elapsed = r.Total
	}
	t := r.Elapsed
	x := r.model.PositionAt(t)
	disp := r.model.DisplacementAt(t)

	d.publish(telemetry.Snapshot{
		Motion:        telemetry.Uniform,
		Elapsed:       t,
		Position:      x,
		Displacement:  disp,
		Velocity:      r.model.Velocity(),
		FinalPosition: r.final,
		Progress:      telemetry.ClampProgress(t / r.Total),
		Status:        fmt.Sprintf("Advance: %.2f m", disp),
		Screen:        r.mapping.Screen(x),
		Running:       true,
	})

	if t >= r.Total {
		d.finish()
		return false
	}
	return true
}

func (d *UniformDriver) finish() {
	r := d.run
	d.halt()
	d.state = Terminated

	x := r.model.PositionAt(r.Total)
	d.publish(telemetry.Snapshot{
		Motion:        telemetry.Uniform,
		Elapsed:       r.Total,
		Position:      x,
		Displacement:  r.model.DisplacementAt(r.Total),
		Velocity:      r.model.Velocity(),
		FinalPosition: r.final,
		Progress:      1,
		Status:        "Simulation complete.",
		Screen:        r.mapping.Screen(x),
		Final:         true,
	})
}

// Stop ends the current run. Calling it on a stopped driver does nothing.
func (d *UniformDriver) Stop() {
	if d.state != Running {
		return
	}
	d.halt()
	d.state = Terminated

	s := d.last
	s.Running = false
	s.Status = "Stopped."
	d.publish(s)
}

func (d *UniformDriver) halt() {
	if d.run != nil {
		d.run.Running = false
	}
}

func (d *UniformDriver) publish(s telemetry.Snapshot) {
	d.last = s
	d.sink.Publish(s)
}
