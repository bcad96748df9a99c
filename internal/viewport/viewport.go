// Package viewport converts physical positions in metres into screen
// coordinates. Mappings are computed once when a run starts and stay frozen
// for its whole duration; a resize mid-run does not reflow them.
package viewport

import "math"

const (
	DefaultWidth  = 600.0
	DefaultHeight = 420.0

	// GroundInset is the distance between the bottom edge and the ground line.
	GroundInset = 120.0
	// TopInset keeps the sprite below the top edge at the initial height.
	TopInset = 60.0

	Margin        = 90.0
	MinTrackWidth = 200.0
	// SpriteHalfWidth offsets a centred sprite so that its middle, not its
	// left edge, sits on the midpoint.
	SpriteHalfWidth = 60.0

	degenerateRange = 1e-3
)

// Viewport is the drawable extent, in pixels, measured at run start.
type Viewport struct {
	Width  float64
	Height float64
}

// Resolve substitutes the default extent for any side that is not yet
// measurable.
func (v Viewport) Resolve() Viewport {
	if v.Width <= 0 || math.IsNaN(v.Width) {
		v.Width = DefaultWidth
	}
	if v.Height <= 0 || math.IsNaN(v.Height) {
		v.Height = DefaultHeight
	}
	return v
}

// Vertical maps a height above ground to a screen row; larger heights map to
// smaller y.
type Vertical struct {
	Ground float64
	Scale  float64
}

func NewVertical(viewportHeight, initialHeight float64) Vertical {
	if viewportHeight <= 0 {
		viewportHeight = DefaultHeight
	}
	ground := viewportHeight - GroundInset
	return Vertical{
		Ground: ground,
		Scale:  (ground - TopInset) / math.Max(initialHeight, 1),
	}
}

func (m Vertical) Screen(height float64) float64 {
	return m.Ground - height*m.Scale
}

// Horizontal maps a position on the track to a screen column.
type Horizontal struct {
	Base       float64
	Scale      float64
	Width      float64
	Degenerate bool
}

// NewHorizontal fits the interval between start and end into the viewport
// width, leaving Margin on both sides. An interval shorter than a millimetre
// pins the sprite to the centre.
func NewHorizontal(viewportWidth, start, end float64) Horizontal {
	if viewportWidth <= 0 {
		viewportWidth = DefaultWidth
	}
	lo, hi := math.Min(start, end), math.Max(start, end)
	span := hi - lo

	if span < degenerateRange || math.IsNaN(span) {
		return Horizontal{
			Base:       viewportWidth/2 - SpriteHalfWidth,
			Width:      viewportWidth,
			Degenerate: true,
		}
	}

	scale := math.Max(viewportWidth-2*Margin, MinTrackWidth) / span
	return Horizontal{
		Base:  Margin - lo*scale,
		Scale: scale,
		Width: viewportWidth,
	}
}

// Screen returns the column for x, falling back to the viewport midpoint when
// the arithmetic produced NaN or ±Inf.
func (m Horizontal) Screen(x float64) float64 {
	px := m.Base + x*m.Scale
	if math.IsNaN(px) || math.IsInf(px, 0) {
		return m.Width / 2
	}
	return px
}
