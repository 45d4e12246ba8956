// Package systems implements per-entity perception, movement, feeding and
// lifecycle rules. Every function is a pure step over components plus the
// shared food supply; the game package drives them in tick order.
package systems

import (
	"math"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
)

// Bounds provides the current world size. Graphical runs back it with the
// window so that resizing changes the world between ticks.
type Bounds interface {
	Size() (width, height float64)
}

// FixedBounds is a world of constant size.
type FixedBounds struct {
	Width, Height float64
}

// Size implements Bounds.
func (b FixedBounds) Size() (float64, float64) {
	return b.Width, b.Height
}

// BoundsFunc adapts a function to the Bounds interface.
type BoundsFunc func() (float64, float64)

// Size implements Bounds.
func (f BoundsFunc) Size() (float64, float64) {
	return f()
}

// OutOfBounds reports whether a point lies outside the world rectangle.
func OutOfBounds(b Bounds, x, y float64) bool {
	w, h := b.Size()
	return x < 0 || y < 0 || x > w || y > h
}

// Move converts the accumulated motor counts into a heading change and a
// forward step, then resets the counts.
func Move(pos *components.Position, motor *components.Motor, cfg *config.Config, bounds Bounds) {
	counts := &motor.Counts

	pos.Heading = normalizeHeading(pos.Heading + float64(counts.Turn())*cfg.Derived.TurnStep)

	v := cfg.Movement.MinVelocity + float64(counts.Thrust())*cfg.Derived.VelocityStep
	if v < 0 {
		v = 0
	}
	motor.LastVelocity = v
	counts.Reset()

	pos.X += math.Cos(pos.Heading) * v
	pos.Y += math.Sin(pos.Heading) * v

	if cfg.Boundary.CanWander {
		return
	}

	w, h := bounds.Size()
	if cfg.Boundary.Teleport {
		pos.X = wrapCoord(pos.X, w)
		pos.Y = wrapCoord(pos.Y, h)
	} else {
		pos.X = math.Max(0, math.Min(pos.X, w))
		pos.Y = math.Max(0, math.Min(pos.Y, h))
	}
}

// wrapCoord teleports a coordinate that left [0, size] to the opposite edge.
func wrapCoord(v, size float64) float64 {
	switch {
	case v > size:
		return 0
	case v < 0:
		return size
	}
	return v
}
