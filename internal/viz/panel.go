package viz

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/kinelab/internal/telemetry"
)

const (
	chartHeight = 5
	chartWidth  = 30
	// chartSamples bounds the history handed to asciigraph.
	chartSamples = 240
)

func newProgress(t Theme) progress.Model {
	p := progress.New(
		progress.WithScaledGradient(string(t.BarFrom), string(t.BarTo)),
		progress.WithoutPercentage(),
	)
	p.Width = panelWidth - 18
	return p
}

// telemetryView renders the rows of one snapshot.
func telemetryView(st styles, s telemetry.Snapshot) string {
	var b strings.Builder
	b.WriteString(st.row("Time", telemetry.Seconds(s.Elapsed)))
	switch s.Motion {
	case telemetry.FreeFall:
		b.WriteString(st.row("Height", telemetry.Meters(s.Position)))
		b.WriteString(st.row("Fallen", telemetry.Meters(s.Displacement)))
		b.WriteString(st.row("Velocity", telemetry.Speed(s.Motion, s.Velocity)))
		b.WriteString(st.row("Time to ground", telemetry.Remaining(s.TimeRemaining)))
	default:
		b.WriteString(st.row("Position", telemetry.Meters(s.Position)))
		b.WriteString(st.row("Displacement", telemetry.Meters(s.Displacement)))
		b.WriteString(st.row("Velocity", telemetry.Speed(s.Motion, s.Velocity)))
		b.WriteString(st.row("Final position", telemetry.Meters(s.FinalPosition)))
	}
	return b.String()
}

func progressView(st styles, bar progress.Model, p float64) string {
	return bar.ViewAs(telemetry.ClampProgress(p)) + " " + st.value.Render(telemetry.Percent(p))
}

// chartView plots the most recent positions, or nothing until there are
// two samples.
func chartView(st styles, motion telemetry.Motion, positions []float64) string {
	if len(positions) < 2 {
		return ""
	}
	if len(positions) > chartSamples {
		positions = positions[len(positions)-chartSamples:]
	}
	caption := "position (m)"
	if motion == telemetry.FreeFall {
		caption = "height (m)"
	}
	chart := asciigraph.Plot(positions,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(caption),
	)
	return st.graph.Render(chart)
}
