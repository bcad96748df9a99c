package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/kinelab/internal/metrics"
	"github.com/san-kum/kinelab/internal/physics"
	"github.com/san-kum/kinelab/internal/sim"
	"github.com/san-kum/kinelab/internal/telemetry"
)

// Motion knows how to start a driver for one kind of motion.
type Motion struct {
	Name    telemetry.Motion
	Start   func(cfg Config, sink telemetry.Sink) (sim.Driver, error)
	Metrics func(cfg Config) []metrics.Metric
	Params  func(cfg Config) map[string]float64
}

type Registry struct {
	motions map[telemetry.Motion]Motion
}

func NewRegistry() *Registry {
	r := &Registry{motions: make(map[telemetry.Motion]Motion)}

	r.Register(Motion{
		Name: telemetry.FreeFall,
		Start: func(cfg Config, sink telemetry.Sink) (sim.Driver, error) {
			d := sim.NewFreeFallDriver(sink)
			if err := d.Start(cfg.FreeFall, cfg.Viewport); err != nil {
				return nil, err
			}
			return d, nil
		},
		Metrics: func(cfg Config) []metrics.Metric {
			model := physics.NewFreeFall(cfg.FreeFall.Height, cfg.FreeFall.Velocity)
			return []metrics.Metric{metrics.NewPeakSpeed(), metrics.NewDuration(), metrics.NewEnergyDrift(model)}
		},
		Params: func(cfg Config) map[string]float64 {
			return map[string]float64{
				"height":   cfg.FreeFall.Height,
				"velocity": cfg.FreeFall.Velocity,
			}
		},
	})

	r.Register(Motion{
		Name: telemetry.Uniform,
		Start: func(cfg Config, sink telemetry.Sink) (sim.Driver, error) {
			d := sim.NewUniformDriver(sink)
			if err := d.Start(cfg.Uniform, cfg.Viewport); err != nil {
				return nil, err
			}
			return d, nil
		},
		Metrics: func(cfg Config) []metrics.Metric {
			return []metrics.Metric{metrics.NewPeakSpeed(), metrics.NewDuration()}
		},
		Params: func(cfg Config) map[string]float64 {
			p := map[string]float64{
				"start":    cfg.Uniform.Start,
				"velocity": cfg.Uniform.Velocity,
				"duration": cfg.Uniform.Duration,
			}
			if cfg.Uniform.Target != nil {
				p["target"] = *cfg.Uniform.Target
			}
			return p
		},
	})

	return r
}

func (r *Registry) Register(m Motion) {
	r.motions[m.Name] = m
}

func (r *Registry) GetMotion(name telemetry.Motion) (Motion, error) {
	m, ok := r.motions[name]
	if !ok {
		return Motion{}, fmt.Errorf("unknown motion: %s", name)
	}
	return m, nil
}

func (r *Registry) ListMotions() []string {
	names := make([]string, 0, len(r.motions))
	for name := range r.motions {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

func (r *Registry) params(cfg Config) map[string]float64 {
	m, err := r.GetMotion(cfg.Motion)
	if err != nil {
		return nil
	}
	return m.Params(cfg)
}
