package game

import (
	"math/rand"
	"sort"

	"github.com/pthm-cable/forage/neural"
)

// SelectParent draws an index with probability proportional to its weight.
// Zero and negative weights are never drawn. Returns -1 when no weight is
// positive.
func SelectParent(weights []int, rng *rand.Rand) int {
	cum := make([]int, len(weights))
	total := 0
	for i, w := range weights {
		if w > 0 {
			total += w
		}
		cum[i] = total
	}
	if total == 0 {
		return -1
	}

	r := rng.Intn(total)
	return sort.Search(len(cum), func(i int) bool { return cum[i] > r })
}

// FindWinner picks a parent genome with probability proportional to food
// eaten, over every slot including one that has just died. Returns nil when
// nobody has eaten yet.
func (p *Population) FindWinner() *neural.Genome {
	weights := make([]int, len(p.slots))
	for i, e := range p.slots {
		weights[i] = p.lifeMap.Get(e).FoodEaten
	}

	i := SelectParent(weights, p.rng)
	if i < 0 {
		return nil
	}
	return p.orgMap.Get(p.slots[i]).Genome
}
