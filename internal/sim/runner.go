package sim

import (
	"context"
	"time"
)

// Pace selects how [Run] spaces ticks.
type Pace int

const (
	// Immediate steps as fast as possible.
	Immediate Pace = iota
	// Realtime waits the driver's own interval between ticks.
	Realtime
)

// Run ticks a started driver on the calling goroutine until its run ends or
// ctx is done. A cancelled run is stopped before Run returns.
func Run(ctx context.Context, d Driver, pace Pace) error {
	if d.State() != Running {
		return ErrNotRunning
	}

	if pace == Immediate {
		for {
			select {
			case <-ctx.Done():
				d.Stop()
				return ctx.Err()
			default:
			}
			if !d.Step() {
				return nil
			}
		}
	}

	tk := time.NewTicker(d.Interval())
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			d.Stop()
			return ctx.Err()
		case <-tk.C:
			if !d.Step() {
				return nil
			}
		}
	}
}
