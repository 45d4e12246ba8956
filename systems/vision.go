package systems

import (
	"math"
	"sort"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
)

// zeroDX stands in for an exactly vertical displacement.
const zeroDX = 1e-12

// FoodVector is a visible food item seen from an entity.
// Angle is heading minus the bearing to the food, in (-Pi, Pi].
type FoodVector struct {
	Distance float64
	Angle    float64
	Index    int // Position in FoodSupply.Items
}

// FindFood returns the food inside the field of view and view distance,
// nearest first.
func FindFood(pos components.Position, supply *FoodSupply, cfg *config.Config) []FoodVector {
	viewDist := cfg.Perception.ViewDistance
	halfFOV := cfg.Perception.FieldOfView / 2

	var seen []FoodVector
	for i, f := range supply.Items {
		dx := f.X - pos.X
		if dx == 0 {
			dx = zeroDX
		}
		dy := f.Y - pos.Y

		// Bounding box rejects most food before any trig
		if math.Abs(dx) >= viewDist || math.Abs(dy) >= viewDist {
			continue
		}

		angle := normalizeAngle(pos.Heading - math.Atan2(dy, dx))
		dist := math.Sqrt(dx*dx + dy*dy)
		if math.Abs(angle) <= halfFOV && dist <= viewDist {
			seen = append(seen, FoodVector{Distance: dist, Angle: angle, Index: i})
		}
	}

	sort.SliceStable(seen, func(a, b int) bool {
		return seen[a].Distance < seen[b].Distance
	})
	return seen
}

// WallDistance casts a ray along the heading and returns the distance to the
// world edge it exits through, capped at the view distance.
func WallDistance(pos components.Position, bounds Bounds, cfg *config.Config) float64 {
	w, h := bounds.Size()
	viewDist := cfg.Perception.ViewDistance
	cos, sin := math.Cos(pos.Heading), math.Sin(pos.Heading)

	dist := math.Inf(1)
	if t, ok := axisExit(pos.X, cos, w); ok {
		dist = t
	}
	if t, ok := axisExit(pos.Y, sin, h); ok && t < dist {
		dist = t
	}

	return math.Max(0, math.Min(dist, viewDist))
}

// axisExit returns the ray parameter at which a coordinate moving with the
// given direction component reaches 0 or size.
func axisExit(p, d, size float64) (float64, bool) {
	switch {
	case d > 1e-12:
		return (size - p) / d, true
	case d < -1e-12:
		return -p / d, true
	}
	return 0, false
}
