// Package components defines ECS components for the simulation.
package components

import (
	"github.com/pthm-cable/forage/neural"
)

// Position is an entity's location and heading in world units.
// Heading is in radians, wrapped to [0, 2π).
type Position struct {
	X       float64 `inspect:"label,fmt:%.1f"`
	Y       float64 `inspect:"label,fmt:%.1f"`
	Heading float64 `inspect:"angle"`
}

// Motor accumulates output-layer firings during a tick.
// Counts are consumed and reset by movement; LastVelocity feeds the hunger cost.
type Motor struct {
	Counts       neural.MotorCounts `inspect:"skip"`
	LastVelocity float64            `inspect:"bar,max:5"`
}

// Life tracks an entity's lifecycle counters.
type Life struct {
	FoodEaten int     `inspect:"label"`       // Fitness
	Age       int     `inspect:"label"`       // Ticks alive, starts at 1
	Hunger    float64 `inspect:"bar,max:600"` // Resets to 0 on eating
}

// NewLife returns the counters of a newborn entity.
func NewLife() Life {
	return Life{Age: 1}
}

// Organism bundles identity with the genome and the brain derived from it.
// Each organism exclusively owns both.
type Organism struct {
	ID     uint32         `inspect:"label"`
	Genome *neural.Genome `inspect:"skip"`
	Brain  *neural.Brain  `inspect:"skip"`
}
