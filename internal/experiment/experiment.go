// Package experiment runs one motion headless: it wires a driver to a
// recorder, the default metrics of the motion and any extra observers.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/kinelab/internal/metrics"
	"github.com/san-kum/kinelab/internal/sim"
	"github.com/san-kum/kinelab/internal/telemetry"
	"github.com/san-kum/kinelab/internal/viewport"
)

var ErrNotSetup = errors.New("experiment: not set up")

type Config struct {
	Motion   telemetry.Motion
	Variant  string
	FreeFall sim.FreeFallParams
	Uniform  sim.UniformParams
	Viewport viewport.Viewport
	Pace     sim.Pace
}

type Result struct {
	Motion    telemetry.Motion
	Snapshots []telemetry.Snapshot
	Params    map[string]float64
	Metrics   map[string]float64
	Wall      time.Duration
}

type Experiment struct {
	cfg       Config
	registry  *Registry
	observers []telemetry.Sink
	recorder  *telemetry.Recorder
	driver    sim.Driver
	metrics   []metrics.Metric
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg, registry: NewRegistry()}
}

// Observe adds a sink that sees every snapshot as it is published.
func (e *Experiment) Observe(s telemetry.Sink) {
	e.observers = append(e.observers, s)
}

// Setup builds and starts the driver. Parameter errors from the driver are
// returned unchanged so callers can classify them.
func (e *Experiment) Setup() error {
	m, err := e.registry.GetMotion(e.cfg.Motion)
	if err != nil {
		return err
	}

	e.recorder = telemetry.NewRecorder()
	e.metrics = m.Metrics(e.cfg)
	sinks := append([]telemetry.Sink{e.recorder, metrics.Sink(e.metrics...)}, e.observers...)

	d, err := m.Start(e.cfg, telemetry.Tee(sinks...))
	if err != nil {
		e.recorder = nil
		return err
	}
	e.driver = d
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.driver == nil {
		return nil, ErrNotSetup
	}

	start := time.Now()
	if err := sim.Run(ctx, e.driver, e.cfg.Pace); err != nil {
		return nil, fmt.Errorf("experiment: %s run: %w", e.cfg.Motion, err)
	}

	return &Result{
		Motion:    e.cfg.Motion,
		Snapshots: e.recorder.Snapshots(),
		Params:    e.registry.params(e.cfg),
		Metrics:   metrics.Values(e.metrics...),
		Wall:      time.Since(start),
	}, nil
}
