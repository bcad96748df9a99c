// Package telemetry defines what a running simulation reports to whatever
// displays it: one [Snapshot] at t=0, one per tick and one final snapshot.
package telemetry

import (
	"fmt"
	"math"
)

type Motion string

const (
	FreeFall Motion = "freefall"
	Uniform  Motion = "uniform"
)

// NoRemaining is the TimeRemaining value of a run with no finite end.
const NoRemaining = -1.0

// Snapshot is a display-ready view of a session at one instant.
//
// Position is the height above ground for free fall and the track position
// for uniform motion. Displacement is the distance fallen or the signed
// displacement respectively. TimeRemaining is only meaningful for free fall
// and FinalPosition only for uniform motion.
type Snapshot struct {
	Motion        Motion
	Elapsed       float64
	Position      float64
	Displacement  float64
	Velocity      float64
	TimeRemaining float64
	FinalPosition float64
	Progress      float64
	Status        string
	Screen        float64
	Running       bool
	Final         bool
}

// Sink receives snapshots. Publish runs on the simulation's own thread and
// must not block.
type Sink interface {
	Publish(s Snapshot)
}

type SinkFunc func(Snapshot)

func (f SinkFunc) Publish(s Snapshot) { f(s) }

// Discard drops every snapshot.
var Discard Sink = SinkFunc(func(Snapshot) {})

// Recorder keeps every published snapshot in order.
type Recorder struct {
	history []Snapshot
}

func NewRecorder() *Recorder {
	return &Recorder{history: make([]Snapshot, 0, 128)}
}

func (r *Recorder) Publish(s Snapshot) { r.history = append(r.history, s) }

func (r *Recorder) Snapshots() []Snapshot { return r.history }

func (r *Recorder) Len() int { return len(r.history) }

// Last returns the most recent snapshot, if any.
func (r *Recorder) Last() (Snapshot, bool) {
	if len(r.history) == 0 {
		return Snapshot{}, false
	}
	return r.history[len(r.history)-1], true
}

func (r *Recorder) Reset() { r.history = r.history[:0] }

// Drop discards the n oldest snapshots.
func (r *Recorder) Drop(n int) {
	if n <= 0 {
		return
	}
	if n >= len(r.history) {
		r.Reset()
		return
	}
	r.history = append(r.history[:0], r.history[n:]...)
}

// Positions returns the Position series, suitable for plotting.
func (r *Recorder) Positions() []float64 {
	out := make([]float64, len(r.history))
	for i, s := range r.history {
		out[i] = s.Position
	}
	return out
}

// Tee publishes to every sink in order.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(s Snapshot) {
		for _, sink := range sinks {
			sink.Publish(s)
		}
	})
}

func Meters(v float64) string  { return fmt.Sprintf("%.2f m", v) }
func Seconds(v float64) string { return fmt.Sprintf("%.2f s", v) }

// Remaining renders a free-fall TimeRemaining, with a dash when undefined.
func Remaining(v float64) string {
	if v < 0 {
		return "—"
	}
	return Seconds(v)
}

// VerticalArrow points down for non-negative (downward) velocities.
func VerticalArrow(v float64) string {
	if v >= 0 {
		return "↓"
	}
	return "↑"
}

func HorizontalArrow(v float64) string {
	if v >= 0 {
		return "→"
	}
	return "←"
}

// Speed renders a signed velocity as an arrow and a magnitude.
func Speed(m Motion, v float64) string {
	arrow := HorizontalArrow(v)
	if m == FreeFall {
		arrow = VerticalArrow(v)
	}
	return fmt.Sprintf("%s %.2f m/s", arrow, math.Abs(v))
}

// ClampProgress limits p to [0,1]; NaN counts as 0.
func ClampProgress(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Percent renders progress as a whole percentage of the run.
func Percent(p float64) string {
	return fmt.Sprintf("%d %% of time", int(math.Round(ClampProgress(p)*100)))
}
