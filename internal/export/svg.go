// Package export renders stored runs as standalone SVG documents.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/kinelab/internal/telemetry"
	"github.com/san-kum/kinelab/internal/viewport"
	"github.com/san-kum/kinelab/internal/viz"
)

const (
	background = "#0a0a0a"
	foreground = "#5fafff"
)

// braille dot bits, [row][col]
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// CanvasToSVG draws every lit braille dot of canvas as a circle, scale
// pixels apart.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.DotWidth()) * scale
	height := float64(canvas.DotHeight()) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, background, foreground)

	radius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			cell := canvas.Grid[row][col] - 0x2800
			if cell <= 0 {
				continue
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if cell&dotBits[dy][dx] == 0 {
						continue
					}
					cx := (float64(col*2+dx) + 0.5) * scale
					cy := (float64(row*4+dy) + 0.5) * scale
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, radius)
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG plots position against elapsed time. It returns "" when
// there are fewer than two samples.
func TrajectoryToSVG(snaps []telemetry.Snapshot, width, height int, stroke string) string {
	if len(snaps) < 2 {
		return ""
	}

	minX, maxX := snaps[0].Elapsed, snaps[0].Elapsed
	minY, maxY := snaps[0].Position, snaps[0].Position
	for _, s := range snaps[1:] {
		minX, maxX = math.Min(minX, s.Elapsed), math.Max(maxX, s.Elapsed)
		minY, maxY = math.Min(minY, s.Position), math.Max(maxY, s.Position)
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="`,
		width, height, width, height, background, stroke)

	for i, s := range snaps {
		x := (s.Elapsed - minX) / rangeX * float64(width)
		y := float64(height) - (s.Position-minY)/rangeY*float64(height)
		cmd := " L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&sb, "%s%.1f,%.1f", cmd, x, y)
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// Write renders the run as a trajectory plot, or as the final animation
// frame when scene is true, and writes it to w.
func Write(w io.Writer, snaps []telemetry.Snapshot, scene bool, variant string) error {
	var doc string
	if scene {
		doc = CanvasToSVG(viz.RenderRun(snaps, viewport.Viewport{}, variant, 60, 20), 4)
	} else {
		doc = TrajectoryToSVG(snaps, 800, 400, foreground)
	}
	if doc == "" {
		return fmt.Errorf("export: not enough samples to plot (%d)", len(snaps))
	}
	_, err := io.WriteString(w, doc)
	return err
}
