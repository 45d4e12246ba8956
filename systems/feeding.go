package systems

import (
	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
)

// Eat consumes from the first food item whose eating radius (size plus
// reach) contains the entity. On a miss, hunger grows with the distance
// moved this tick. It reports whether anything was eaten.
func Eat(pos components.Position, motor components.Motor, life *components.Life, supply *FoodSupply, cfg *config.Config) bool {
	for i := range supply.Items {
		f := supply.Items[i]
		dx, dy := pos.X-f.X, pos.Y-f.Y
		r := f.Size + cfg.Food.Reach
		if dx*dx+dy*dy < r*r {
			life.FoodEaten++
			life.Hunger = 0
			supply.Bite(i)
			return true
		}
	}

	life.Hunger += 1 + motor.LastVelocity*cfg.Metabolism.EnergyCost
	return false
}
