package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/kinelab/internal/physics"
	"github.com/san-kum/kinelab/internal/telemetry"
	"github.com/san-kum/kinelab/internal/viewport"
)

type freeFallRun struct {
	Session
	model   physics.FreeFall
	mapping viewport.Vertical
}

// FreeFallDriver animates a drop until the body reaches the ground, then
// hands the sprite over to a [Bounce].
type FreeFallDriver struct {
	sink   telemetry.Sink
	state  State
	run    *freeFallRun
	last   telemetry.Snapshot
	bounce *Bounce
}

func NewFreeFallDriver(sink telemetry.Sink) *FreeFallDriver {
	if sink == nil {
		sink = telemetry.Discard
	}
	return &FreeFallDriver{sink: sink}
}

func (d *FreeFallDriver) Motion() telemetry.Motion { return telemetry.FreeFall }
func (d *FreeFallDriver) Interval() time.Duration  { return FreeFallInterval }
func (d *FreeFallDriver) State() State             { return d.state }

func (d *FreeFallDriver) Session() Session {
	if d.run == nil {
		return Session{}
	}
	return d.run.Session
}

// Model returns the motion law of the current run.
func (d *FreeFallDriver) Model() (physics.FreeFall, bool) {
	if d.run == nil {
		return physics.FreeFall{}, false
	}
	return d.run.model, true
}

// Mapping returns the screen mapping frozen at start.
func (d *FreeFallDriver) Mapping() viewport.Vertical {
	if d.run == nil {
		return viewport.Vertical{}
	}
	return d.run.mapping
}

// Bounce returns the post-impact effect of the last run, nil before impact.
func (d *FreeFallDriver) Bounce() *Bounce { return d.bounce }

func validateFreeFall(p FreeFallParams) error {
	if math.IsNaN(p.Height) || math.IsInf(p.Height, 0) {
		return invalid("height", "must be a finite number")
	}
	if p.Height < 0 {
		return invalid("height", "must be zero or positive")
	}
	if math.IsNaN(p.Velocity) || math.IsInf(p.Velocity, 0) {
		return invalid("velocity", "must be a finite number")
	}
	return nil
}

// Start validates p, cancels any run in flight and begins a new one from
// t=0. On error nothing changes.
func (d *FreeFallDriver) Start(p FreeFallParams, vp viewport.Viewport) error {
	if err := validateFreeFall(p); err != nil {
		return err
	}

	vp = vp.Resolve()
	model := physics.NewFreeFall(p.Height, p.Velocity)
	run := &freeFallRun{
		Session: Session{
			Total:    model.TimeToGround(),
			Running:  true,
			Viewport: vp,
		},
		model:   model,
		mapping: viewport.NewVertical(vp.Height, p.Height),
	}

	d.halt()
	d.run = run
	d.bounce = nil
	d.state = Running

	remaining := run.Total
	if remaining < 0 {
		remaining = telemetry.NoRemaining
	}
	d.publish(telemetry.Snapshot{
		Motion:        telemetry.FreeFall,
		Position:      p.Height,
		Velocity:      p.Velocity,
		TimeRemaining: remaining,
		Status:        "Simulation in progress…",
		Screen:        run.mapping.Screen(p.Height),
		Running:       true,
	})
	return nil
}

func (d *FreeFallDriver) Step() bool {
	if d.state != Running || d.run == nil {
		return false
	}
	r := d.run

	r.Elapsed += TimeStep
	t := r.Elapsed
	y := r.model.PositionAt(t)
	height := math.Max(y, 0)

	remaining := telemetry.NoRemaining
	if r.Total >= 0 {
		remaining = math.Max(r.Total-t, 0)
	}
	progress := 0.0
	if r.Total > 0 {
		progress = math.Min(t/r.Total, 1)
	}

	d.publish(telemetry.Snapshot{
		Motion:        telemetry.FreeFall,
		Elapsed:       t,
		Position:      height,
		Displacement:  math.Max(r.model.Height()-height, 0),
		Velocity:      r.model.VelocityAt(t),
		TimeRemaining: remaining,
		Progress:      progress,
		Status:        fmt.Sprintf("Height: %.2f m", height),
		Screen:        r.mapping.Screen(height),
		Running:       true,
	})

	if y <= 0 {
		d.land()
		return false
	}
	return true
}

func (d *FreeFallDriver) land() {
	r := d.run
	d.halt()
	d.state = Terminated

	end := r.Elapsed
	if r.Total > 0 {
		end = r.Total
	}
	d.publish(telemetry.Snapshot{
		Motion:       telemetry.FreeFall,
		Elapsed:      end,
		Displacement: r.model.Height(),
		Velocity:     r.model.VelocityAt(end),
		Progress:     1,
		Status:       "Impact complete.",
		Screen:       r.mapping.Ground,
		Final:        true,
	})
	d.bounce = NewBounce(r.mapping.Ground)
}

// Stop ends the current run. Calling it on a stopped driver does nothing.
func (d *FreeFallDriver) Stop() {
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

func (d *FreeFallDriver) halt() {
	if d.run != nil {
		d.run.Running = false
	}
}

func (d *FreeFallDriver) publish(s telemetry.Snapshot) {
	d.last = s
	d.sink.Publish(s)
}
