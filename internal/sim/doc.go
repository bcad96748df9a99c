// Package sim drives the kinelab animations.
//
// A driver owns one [Session] per run and advances it in fixed steps of
// [TimeStep] simulated seconds. Steps are requested by a tick source (the
// TUI timer or [Run]); the simulated clock never looks at wall time, so two
// runs with the same inputs produce identical telemetry.
//
//	d := sim.NewFreeFallDriver(recorder)
//	if err := d.Start(sim.FreeFallParams{Height: 50}, viewport.Viewport{}); err != nil {
//	    return err
//	}
//	err := sim.Run(ctx, d, sim.Immediate)
//
// # Thread Safety
//
// Drivers are NOT thread-safe. Start, Step and Stop must be called from the
// same goroutine, normally the event loop that also handles user input.
package sim
