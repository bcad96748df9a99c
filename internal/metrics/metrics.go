// Package metrics summarises a run from the snapshots it published.
package metrics

import "github.com/san-kum/kinelab/internal/telemetry"

type Metric interface {
	Name() string
	Observe(s telemetry.Snapshot)
	Value() float64
	Reset()
}

// Sink feeds every published snapshot to ms.
func Sink(ms ...Metric) telemetry.Sink {
	return telemetry.SinkFunc(func(s telemetry.Snapshot) {
		for _, m := range ms {
			m.Observe(s)
		}
	})
}

// Collect replays snaps through ms and returns their values by name.
func Collect(snaps []telemetry.Snapshot, ms ...Metric) map[string]float64 {
	for _, s := range snaps {
		for _, m := range ms {
			m.Observe(s)
		}
	}
	return Values(ms...)
}

func Values(ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
