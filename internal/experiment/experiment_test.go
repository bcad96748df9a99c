package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/kinelab/internal/sim"
	"github.com/san-kum/kinelab/internal/telemetry"
)

func TestRunFreeFall(t *testing.T) {
	exp := New(Config{
		Motion:   telemetry.FreeFall,
		FreeFall: sim.FreeFallParams{Height: 50},
	})
	var live int
	exp.Observe(telemetry.SinkFunc(func(telemetry.Snapshot) { live++ }))

	if err := exp.Setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// initial + 64 ticks + final
	if len(res.Snapshots) != 66 {
		t.Errorf("expected 66 snapshots, got %d", len(res.Snapshots))
	}
	if live != len(res.Snapshots) {
		t.Errorf("observer saw %d snapshots, recorder %d", live, len(res.Snapshots))
	}
	for _, name := range []string{"peak_speed", "duration", "energy_drift"} {
		if _, ok := res.Metrics[name]; !ok {
			t.Errorf("missing metric %s", name)
		}
	}
	if res.Params["height"] != 50 {
		t.Errorf("expected height param 50, got %f", res.Params["height"])
	}
}

func TestRunUniformTarget(t *testing.T) {
	target := 20.0
	exp := New(Config{
		Motion:  telemetry.Uniform,
		Uniform: sim.UniformParams{Start: 0, Target: &target, Duration: 4},
	})
	if err := exp.Setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	last := res.Snapshots[len(res.Snapshots)-1]
	if !last.Final || last.Position != 20 {
		t.Errorf("expected to finish at 20, got %+v", last)
	}
	if res.Metrics["peak_speed"] != 5 {
		t.Errorf("expected derived speed 5, got %f", res.Metrics["peak_speed"])
	}
	if res.Params["target"] != 20 {
		t.Errorf("expected target param, got %v", res.Params)
	}
}

func TestSetupRejectsBadParams(t *testing.T) {
	exp := New(Config{
		Motion:  telemetry.Uniform,
		Uniform: sim.UniformParams{Start: 0, Duration: 4},
	})
	if err := exp.Setup(); !errors.Is(err, sim.ErrMissingData) {
		t.Errorf("expected ErrMissingData, got %v", err)
	}
	if _, err := exp.Run(context.Background()); !errors.Is(err, ErrNotSetup) {
		t.Errorf("expected ErrNotSetup, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if got := r.ListMotions(); len(got) != 2 || got[0] != "freefall" || got[1] != "uniform" {
		t.Errorf("unexpected motions: %v", got)
	}
	if _, err := r.GetMotion("orbit"); err == nil {
		t.Error("expected error for unknown motion")
	}
}
