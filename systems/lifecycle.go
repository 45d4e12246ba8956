package systems

import (
	"math/rand"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
)

// DeathCause is the outcome of a lifecycle check.
type DeathCause uint8

const (
	Alive DeathCause = iota
	Wandered
	Starved
	Natural
)

// String returns the cause name used in logs and telemetry.
func (c DeathCause) String() string {
	switch c {
	case Alive:
		return "alive"
	case Wandered:
		return "wandered"
	case Starved:
		return "starved"
	case Natural:
		return "natural"
	}
	return "unknown"
}

// Live ages the entity by one tick and decides whether it dies.
// Leaving the world while wandering is enabled is always fatal. Starvation
// and old age only make death possible; each tick then rolls DeathChance.
// Old age is not checked while the entity is starving.
func Live(pos components.Position, life *components.Life, bounds Bounds, cfg *config.Config, rng *rand.Rand) DeathCause {
	life.Age++

	if cfg.Boundary.CanWander && OutOfBounds(bounds, pos.X, pos.Y) {
		return Wandered
	}

	chance := cfg.Metabolism.DeathChance
	if life.Hunger > cfg.Metabolism.StarvationLength {
		if rng.Float64() < chance {
			return Starved
		}
	} else if life.Age > cfg.Metabolism.OldAge {
		if rng.Float64() < chance {
			return Natural
		}
	}
	return Alive
}
