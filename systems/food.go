package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/forage/config"
)

// Food is a point resource depleted by eating.
type Food struct {
	X, Y float64
	Size float64
}

// FoodSupply keeps a fixed number of food items in the world.
// Eaten-out and out-of-bounds items are replaced by fresh random ones.
type FoodSupply struct {
	Items []Food

	rng    *rand.Rand
	bounds Bounds
	cfg    *config.Config
}

// NewFoodSupply creates a supply of cfg.Food.Count random items.
func NewFoodSupply(rng *rand.Rand, bounds Bounds, cfg *config.Config) *FoodSupply {
	s := &FoodSupply{
		Items:  make([]Food, cfg.Food.Count),
		rng:    rng,
		bounds: bounds,
		cfg:    cfg,
	}
	for i := range s.Items {
		s.Items[i] = s.newFood()
	}
	return s
}

// newFood places a food item inside the world, keeping a border margin.
// Draw order is x, y, size.
func (s *FoodSupply) newFood() Food {
	w, h := s.bounds.Size()
	border := s.cfg.Food.Border
	minSize, maxSize := s.cfg.Food.MinSize, s.cfg.Food.MaxSize

	return Food{
		X:    border + math.Max(0, w-2*border)*s.rng.Float64(),
		Y:    border + math.Max(0, h-2*border)*s.rng.Float64(),
		Size: minSize + (maxSize-minSize)*s.rng.Float64(),
	}
}

// Replenish replaces items that fell outside the world, e.g. after the
// window shrank. It returns the number of items replaced.
func (s *FoodSupply) Replenish() int {
	replaced := 0
	for i := range s.Items {
		f := &s.Items[i]
		if OutOfBounds(s.bounds, f.X, f.Y) {
			*f = s.newFood()
			replaced++
		}
	}
	return replaced
}

// Bite shrinks item i by one unit and replaces it once it is used up.
// It reports whether the item was replaced.
func (s *FoodSupply) Bite(i int) bool {
	f := &s.Items[i]
	f.Size--
	if f.Size <= s.cfg.Food.MinSize {
		*f = s.newFood()
		return true
	}
	return false
}
