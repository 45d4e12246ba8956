package game

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/neural"
	"github.com/pthm-cable/forage/systems"
	"github.com/pthm-cable/forage/telemetry"
)

// EntityView is a read-only copy of one entity for renderers and inspectors.
type EntityView struct {
	Slot     int
	ID       uint32
	Position components.Position
	Life     components.Life
	Velocity float64
	Brain    *neural.Brain
	Genome   *neural.Genome
}

func (p *Population) view(i int) EntityView {
	e := p.slots[i]
	org := p.orgMap.Get(e)
	return EntityView{
		Slot:     i,
		ID:       org.ID,
		Position: *p.posMap.Get(e),
		Life:     *p.lifeMap.Get(e),
		Velocity: p.motorMap.Get(e).LastVelocity,
		Brain:    org.Brain,
		Genome:   org.Genome,
	}
}

// Snapshot returns every entity in ranking order.
func (p *Population) Snapshot() []EntityView {
	out := make([]EntityView, len(p.slots))
	for i := range p.slots {
		out[i] = p.view(i)
	}
	return out
}

// Best returns the top-ranked entity as of the last ranking.
func (p *Population) Best() EntityView {
	return p.view(0)
}

// Entity returns the entity in slot i.
func (p *Population) Entity(i int) (EntityView, bool) {
	if i < 0 || i >= len(p.slots) {
		return EntityView{}, false
	}
	return p.view(i), true
}

// Food returns the current food items. The slice must not be modified.
func (p *Population) Food() []systems.Food {
	return p.food.Items
}

// Sample collects the per-entity values a telemetry window is computed from.
func (p *Population) Sample() telemetry.PopulationSample {
	s := telemetry.PopulationSample{
		Fitness: make([]float64, len(p.slots)),
		Ages:    make([]float64, len(p.slots)),
	}
	for i, e := range p.slots {
		life := p.lifeMap.Get(e)
		s.Fitness[i] = float64(life.FoodEaten)
		s.Ages[i] = float64(life.Age)
		if i == 0 || life.FoodEaten > s.Best {
			s.Best = life.FoodEaten
		}
	}
	return s
}

// Export captures the population for a snapshot file. Food is not saved;
// a resumed run grows a fresh supply.
func (p *Population) Export(runID string, seed int64) *telemetry.Snapshot {
	w, h := p.bounds.Size()
	s := &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		RunID:       runID,
		RNGSeed:     seed,
		Tick:        p.tick,
		WorldWidth:  w,
		WorldHeight: h,
		Counters:    p.stats,
		Entities:    make([]telemetry.EntityState, len(p.slots)),
	}
	for i, e := range p.slots {
		pos := p.posMap.Get(e)
		life := p.lifeMap.Get(e)
		org := p.orgMap.Get(e)
		s.Entities[i] = telemetry.EntityState{
			ID:        org.ID,
			X:         pos.X,
			Y:         pos.Y,
			Heading:   pos.Heading,
			FoodEaten: life.FoodEaten,
			Age:       life.Age,
			Hunger:    life.Hunger,
			Genome:    org.Genome.Clone(),
		}
	}
	return s
}

// RestorePopulation rebuilds a population from a snapshot. The snapshot must
// hold exactly cfg.Genetics.PopulationSize entities with genomes matching the
// configured brain topology.
func RestorePopulation(cfg *config.Config, rng *rand.Rand, bounds systems.Bounds, snap *telemetry.Snapshot) (*Population, error) {
	if n := len(snap.Entities); n != cfg.Genetics.PopulationSize {
		return nil, fmt.Errorf("snapshot has %d entities, population size is %d", n, cfg.Genetics.PopulationSize)
	}

	p := newEmptyPopulation(cfg, rng, bounds)
	for i, st := range snap.Entities {
		if st.Genome == nil {
			return nil, fmt.Errorf("entity %d: missing genome", st.ID)
		}
		if err := st.Genome.Validate(p.params); err != nil {
			return nil, fmt.Errorf("entity %d: %w", st.ID, err)
		}

		pos := components.Position{X: st.X, Y: st.Y, Heading: st.Heading}
		motor := components.Motor{}
		life := components.Life{FoodEaten: st.FoodEaten, Age: st.Age, Hunger: st.Hunger}
		org := components.Organism{
			ID:     st.ID,
			Genome: st.Genome,
			Brain:  neural.NewBrain(st.Genome, p.params),
		}
		p.slots[i] = p.mapper.NewEntity(&pos, &motor, &life, &org)
		if st.ID >= p.nextID {
			p.nextID = st.ID + 1
		}
	}

	p.food = systems.NewFoodSupply(rng, bounds, cfg)
	p.stats = snap.Counters
	p.tick = snap.Tick
	return p, nil
}

// BestFitness returns the most food eaten by any living entity.
func (p *Population) BestFitness() int {
	best := 0
	for _, e := range p.slots {
		best = max(best, p.lifeMap.Get(e).FoodEaten)
	}
	return best
}

// Inputs returns the sensor inputs the entity in slot i would see now.
func (p *Population) Inputs(i int) systems.SensorInputs {
	return systems.SenseInputs(*p.posMap.Get(p.slots[i]), p.food, p.bounds, p.cfg)
}
