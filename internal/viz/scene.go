package viz

import (
	"math"

	"github.com/san-kum/kinelab/internal/telemetry"
	"github.com/san-kum/kinelab/internal/viewport"
)

const (
	VariantBall      = "ball"
	VariantParachute = "parachute"
)

// Scene geometry in viewport pixels.
const (
	dropSprite  = 40.0
	carWidth    = 2 * viewport.SpriteHalfWidth
	carHeight   = 70.0
	edgeGap     = 30.0
	scaleX      = 40.0
	scaleTop    = 40.0
	scaleTicks  = 6
	laneDash    = 4
	markerReach = 12.0
)

// projector converts viewport pixels to canvas dots.
type projector struct {
	sx, sy float64
}

func newProjector(c *Canvas, vp viewport.Viewport) projector {
	vp = vp.Resolve()
	return projector{
		sx: float64(c.DotWidth()) / vp.Width,
		sy: float64(c.DotHeight()) / vp.Height,
	}
}

func (p projector) pt(x, y float64) (int, int) {
	return int(math.Round(x * p.sx)), int(math.Round(y * p.sy))
}

func (p projector) len(v float64) int {
	return int(math.Round(v * math.Min(p.sx, p.sy)))
}

// GroundLine is the row of the ground in a free-fall scene. A sprite whose
// top edge sits on the mapping's ground rests exactly on it.
func GroundLine(vp viewport.Viewport) float64 {
	return viewport.NewVertical(vp.Resolve().Height, 0).Ground + dropSprite
}

// Lane is the row the uniform-motion sprite travels on.
func Lane(vp viewport.Viewport) float64 {
	h := vp.Resolve().Height
	road := h/2 + 20
	return road + (h-road)/2
}

// DrawFreeFall draws the ground, the height scale and the sprite whose top
// edge is at screen row top.
func DrawFreeFall(c *Canvas, vp viewport.Viewport, top float64, variant string) {
	vp = vp.Resolve()
	p := newProjector(c, vp)
	ground := GroundLine(vp)

	gx0, gy := p.pt(0, ground)
	gx1, _ := p.pt(vp.Width, ground)
	c.DrawLine(gx0, gy, gx1, gy)

	sx, sTop := p.pt(scaleX, scaleTop)
	_, sBottom := p.pt(scaleX, ground)
	c.DrawLine(sx, sTop, sx, sBottom)
	step := (ground - scaleTop) / scaleTicks
	for i := 0; i <= scaleTicks; i++ {
		_, ty := p.pt(scaleX, ground-float64(i)*step)
		c.DrawLine(sx-1, ty, sx+1, ty)
	}

	top = math.Min(top, ground-dropSprite)
	drawSprite(c, p, vp.Width/2-dropSprite/2, top, dropSprite, dropSprite, variant)
}

// DrawUniform draws the lane, start and finish markers and the sprite whose
// left edge is at screen column left. start and end are the left edges the
// mapping assigns to the initial and final positions.
func DrawUniform(c *Canvas, vp viewport.Viewport, left, start, end float64, variant string) {
	vp = vp.Resolve()
	p := newProjector(c, vp)
	lane := Lane(vp)

	lx0, ly := p.pt(edgeGap, lane+4)
	lx1, _ := p.pt(vp.Width-edgeGap, lane+4)
	c.DrawDashed(lx0, lx1, ly, laneDash)

	for _, m := range []float64{start, end} {
		mx, my0 := p.pt(clampCar(m, vp)+carWidth/2, lane-markerReach)
		_, my1 := p.pt(0, lane+markerReach)
		c.DrawLine(mx, my0, mx, my1)
	}

	drawSprite(c, p, clampCar(left, vp), lane-carHeight, carWidth, carHeight, variant)
}

func clampCar(x float64, vp viewport.Viewport) float64 {
	if math.IsNaN(x) {
		x = vp.Width / 2
	}
	return math.Min(math.Max(x, edgeGap), vp.Width-carWidth-edgeGap)
}

// drawSprite draws a variant inside the box with top-left (x, y).
func drawSprite(c *Canvas, p projector, x, y, w, h float64, variant string) {
	x0, y0 := p.pt(x, y)
	x1, y1 := p.pt(x+w, y+h)
	cx := (x0 + x1) / 2

	switch variant {
	case VariantParachute:
		r := max(absInt(x1-x0)/2, 1)
		canopy := y0 + r
		for a := 0.0; a <= math.Pi; a += math.Pi / float64(4*r+4) {
			c.Set(cx+int(math.Round(float64(r)*math.Cos(a))), canopy-int(math.Round(float64(r)*math.Sin(a))))
		}
		body := max(r/3, 1)
		c.DrawLine(cx-r, canopy, cx-body, y1-body)
		c.DrawLine(cx+r, canopy, cx+body, y1-body)
		c.FillRect(cx-body, y1-body, cx+body, y1)
	default:
		r := max(min(absInt(x1-x0), absInt(y1-y0))/2, 1)
		c.DrawCircle(cx, y1-r, r)
		c.Set(cx, y1-r)
	}
}

// RenderRun draws the last frame of a recorded run with every earlier sprite
// position marked as a trail.
func RenderRun(snaps []telemetry.Snapshot, vp viewport.Viewport, variant string, w, h int) *Canvas {
	c := NewCanvas(w, h)
	if len(snaps) == 0 {
		return c
	}
	vp = vp.Resolve()
	p := newProjector(c, vp)
	last := snaps[len(snaps)-1]

	switch last.Motion {
	case telemetry.FreeFall:
		cx, _ := p.pt(vp.Width/2, 0)
		for _, s := range snaps {
			_, y := p.pt(0, math.Min(s.Screen, GroundLine(vp)-dropSprite)+dropSprite/2)
			c.Set(cx, y)
		}
		DrawFreeFall(c, vp, last.Screen, variant)
	default:
		first := snaps[0]
		_, ly := p.pt(0, Lane(vp)-carHeight-markerReach)
		for _, s := range snaps {
			x, _ := p.pt(clampCar(s.Screen, vp)+carWidth/2, 0)
			c.Set(x, ly)
		}
		end := uniformEnd(snaps, vp)
		DrawUniform(c, vp, last.Screen, first.Screen, end, variant)
	}
	return c
}

// uniformEnd recovers the screen column of the final position from two
// distinct samples; the mapping is affine.
func uniformEnd(snaps []telemetry.Snapshot, vp viewport.Viewport) float64 {
	first, last := snaps[0], snaps[len(snaps)-1]
	if last.Position == first.Position {
		return last.Screen
	}
	scale := (last.Screen - first.Screen) / (last.Position - first.Position)
	end := first.Screen + (last.FinalPosition-first.Position)*scale
	if math.IsNaN(end) || math.IsInf(end, 0) {
		return vp.Width / 2
	}
	return end
}
