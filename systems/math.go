package systems

import "math"

const twoPi = 2 * math.Pi

// normalizeAngle wraps an angle to (-Pi, Pi].
func normalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= twoPi
	}
	for angle <= -math.Pi {
		angle += twoPi
	}
	return angle
}

// normalizeHeading wraps a heading to [0, 2*Pi).
func normalizeHeading(h float64) float64 {
	h = math.Mod(h, twoPi)
	if h < 0 {
		h += twoPi
	}
	// Mod of a tiny negative value can round back up to 2*Pi
	if h >= twoPi {
		h = 0
	}
	return h
}

// finite replaces NaN and infinities with 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
