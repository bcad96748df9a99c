package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/kinelab/internal/telemetry"
	"github.com/san-kum/kinelab/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	svg := CanvasToSVG(c, 10)
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
	if !strings.Contains(svg, `cx="5.0" cy="5.0"`) {
		t.Error("expected first dot at (5,5)")
	}
	if !strings.Contains(svg, `cx="35.0" cy="35.0"`) {
		t.Error("expected second dot at (35,35)")
	}
	if CanvasToSVG(nil, 1) != "" {
		t.Error("expected empty output for nil canvas")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	snaps := []telemetry.Snapshot{
		{Elapsed: 0, Position: 10},
		{Elapsed: 1, Position: 5},
		{Elapsed: 2, Position: 0},
	}
	svg := TrajectoryToSVG(snaps, 100, 50, "#fff")
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected a complete svg document")
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments, got %d", strings.Count(svg, " L"))
	}
	if TrajectoryToSVG(snaps[:1], 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single sample")
	}
}

func TestWrite(t *testing.T) {
	snaps := []telemetry.Snapshot{
		{Motion: telemetry.FreeFall, Elapsed: 0, Position: 1, Screen: 60},
		{Motion: telemetry.FreeFall, Elapsed: 0.45, Position: 0, Screen: 300, Final: true},
	}

	var plot, scene bytes.Buffer
	if err := Write(&plot, snaps, false, viz.VariantBall); err != nil {
		t.Fatal(err)
	}
	if err := Write(&scene, snaps, true, viz.VariantBall); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(plot.String(), "<path") {
		t.Error("expected a path in the trajectory plot")
	}
	if !strings.Contains(scene.String(), "<circle") {
		t.Error("expected dots in the scene")
	}

	if err := Write(&plot, nil, false, viz.VariantBall); err == nil {
		t.Error("expected error for an empty run")
	}
}
