package sim

import "time"

const (
	BounceInterval = 20 * time.Millisecond
	BounceOffset   = 3.0
	BounceTicks    = 16
	bounceFlip     = 3
)

type Direction int

const (
	Up Direction = iota
	Down
)

// Bounce is the cosmetic wobble of the sprite after impact. It moves the
// displayed position only and knows nothing about the session it follows.
type Bounce struct {
	rest  float64
	y     float64
	count int
	dir   Direction
}

// NewBounce starts a bounce around the screen row rest, moving up first.
func NewBounce(rest float64) *Bounce {
	return &Bounce{rest: rest, y: rest, dir: Up}
}

// Step moves the sprite by one offset and returns its new row and whether
// more ticks are wanted. Screen rows grow downwards, so up is negative.
func (b *Bounce) Step() (float64, bool) {
	if b.Done() {
		return b.y, false
	}

	if b.dir == Up {
		b.y -= BounceOffset
	} else {
		b.y += BounceOffset
	}
	b.count++
	if b.count%bounceFlip == 0 {
		if b.dir == Up {
			b.dir = Down
		} else {
			b.dir = Up
		}
	}
	return b.y, !b.Done()
}

func (b *Bounce) Done() bool { return b.count >= BounceTicks }

func (b *Bounce) Count() int           { return b.count }
func (b *Bounce) Direction() Direction { return b.dir }
func (b *Bounce) Y() float64           { return b.y }

// Offset is the current displacement from the resting row.
func (b *Bounce) Offset() float64 { return b.y - b.rest }
