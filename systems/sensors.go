package systems

import (
	"math"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
)

// Sensor input indices, one per input-layer neuron.
const (
	InputFoodLeft = iota
	InputFoodNear
	InputFoodRight
	InputWallNear
	NumInputs
)

// SensorInputs are the brain inputs for one tick, each in [0, maxStrength].
type SensorInputs [NumInputs]float64

// AsSlice returns the inputs as a slice for Brain.Think.
func (s *SensorInputs) AsSlice() []float64 {
	return s[:]
}

// SenseInputs builds the brain inputs from the nearest visible food and the
// wall ahead. Food to the right (positive angle) leaves the left input at 0
// and food to the left leaves the right input at 0.
func SenseInputs(pos components.Position, supply *FoodSupply, bounds Bounds, cfg *config.Config) SensorInputs {
	var in SensorInputs

	viewDist := cfg.Perception.ViewDistance
	halfFOV := cfg.Perception.FieldOfView / 2

	if seen := FindFood(pos, supply, cfg); len(seen) > 0 {
		nearest := seen[0]
		bias := math.Abs(nearest.Angle) / halfFOV
		if nearest.Angle <= 0 {
			in[InputFoodLeft] = bias
		}
		if nearest.Angle >= 0 {
			in[InputFoodRight] = bias
		}
		in[InputFoodNear] = (viewDist - nearest.Distance) / viewDist
	}
	in[InputWallNear] = (viewDist - WallDistance(pos, bounds, cfg)) / viewDist

	for i := range in {
		in[i] = finite(in[i] * cfg.Neural.MaxStrength)
	}
	return in
}
