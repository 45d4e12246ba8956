package game

import (
	"math"
	"math/rand"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/neural"
	"github.com/pthm-cable/forage/systems"
	"github.com/pthm-cable/forage/telemetry"
)

// Population is the fixed-size set of foraging entities and the food they share.
// Entities live in an ECS world; slots holds them in ranking order and is
// the only place the order is kept.
type Population struct {
	cfg    *config.Config
	params neural.Params
	rng    *rand.Rand
	bounds systems.Bounds

	world    *ecs.World
	mapper   *ecs.Map4[components.Position, components.Motor, components.Life, components.Organism]
	posMap   *ecs.Map1[components.Position]
	motorMap *ecs.Map1[components.Motor]
	lifeMap  *ecs.Map1[components.Life]
	orgMap   *ecs.Map1[components.Organism]

	slots  []ecs.Entity
	food   *systems.FoodSupply
	stats  telemetry.Counters
	nextID uint32
	tick   int64

	perf    *telemetry.PerfCollector
	onDeath func(slot int, cause systems.DeathCause)
}

// NewPopulation creates the food supply and cfg.Genetics.PopulationSize
// random entities.
func NewPopulation(cfg *config.Config, rng *rand.Rand, bounds systems.Bounds) *Population {
	p := newEmptyPopulation(cfg, rng, bounds)
	p.food = systems.NewFoodSupply(rng, bounds, cfg)

	for i := range p.slots {
		p.slots[i] = p.spawn(neural.NewRandomGenome(rng, p.params))
	}
	return p
}

func newEmptyPopulation(cfg *config.Config, rng *rand.Rand, bounds systems.Bounds) *Population {
	world := ecs.NewWorld()
	return &Population{
		cfg:      cfg,
		params:   neural.NewParams(cfg),
		rng:      rng,
		bounds:   bounds,
		world:    world,
		mapper:   ecs.NewMap4[components.Position, components.Motor, components.Life, components.Organism](world),
		posMap:   ecs.NewMap1[components.Position](world),
		motorMap: ecs.NewMap1[components.Motor](world),
		lifeMap:  ecs.NewMap1[components.Life](world),
		orgMap:   ecs.NewMap1[components.Organism](world),
		slots:    make([]ecs.Entity, cfg.Genetics.PopulationSize),
	}
}

// spawn creates an entity from genome at a random position and heading.
// Draw order is x, y, heading.
func (p *Population) spawn(genome *neural.Genome) ecs.Entity {
	w, h := p.bounds.Size()
	pos := components.Position{
		X:       w * p.rng.Float64(),
		Y:       h * p.rng.Float64(),
		Heading: p.rng.Float64() * 2 * math.Pi,
	}
	motor := components.Motor{}
	life := components.NewLife()
	org := components.Organism{
		ID:     p.nextID,
		Genome: genome,
		Brain:  neural.NewBrain(genome, p.params),
	}
	p.nextID++
	p.stats.Born++

	return p.mapper.NewEntity(&pos, &motor, &life, &org)
}

// SetPerfCollector enables per-phase timing of Tick.
func (p *Population) SetPerfCollector(pc *telemetry.PerfCollector) {
	p.perf = pc
}

// OnDeath registers a callback run for every death, before replacement.
func (p *Population) OnDeath(fn func(slot int, cause systems.DeathCause)) {
	p.onDeath = fn
}

func (p *Population) phase(name string) {
	if p.perf != nil {
		p.perf.StartPhase(name)
	}
}

// Tick advances the simulation by one step: ranking, then for every entity
// in ranking order think, move, eat and live. A dead entity is replaced in
// its slot before the next slot is processed; the replacement is first
// processed on the following tick.
func (p *Population) Tick() {
	p.phase(telemetry.PhaseFood)
	p.food.Replenish()

	p.phase(telemetry.PhaseSort)
	p.sortByFitness()

	thoughts := p.cfg.Neural.ThoughtsPerMove
	for i, e := range p.slots {
		pos := p.posMap.Get(e)
		motor := p.motorMap.Get(e)
		life := p.lifeMap.Get(e)
		org := p.orgMap.Get(e)

		p.phase(telemetry.PhaseThink)
		inputs := systems.SenseInputs(*pos, p.food, p.bounds, p.cfg)
		org.Brain.Think(inputs.AsSlice(), thoughts, &motor.Counts)

		p.phase(telemetry.PhaseMove)
		systems.Move(pos, motor, p.cfg, p.bounds)

		p.phase(telemetry.PhaseEat)
		if systems.Eat(*pos, *motor, life, p.food, p.cfg) {
			p.stats.Eaten++
		}

		p.phase(telemetry.PhaseLive)
		cause := systems.Live(*pos, life, p.bounds, p.cfg, p.rng)
		if cause == systems.Alive {
			continue
		}

		p.phase(telemetry.PhaseReplace)
		p.recordDeath(cause)
		if p.onDeath != nil {
			p.onDeath(i, cause)
		}
		p.replace(i)
	}

	p.tick++
}

func (p *Population) recordDeath(cause systems.DeathCause) {
	switch cause {
	case systems.Wandered:
		p.stats.Wandered++
	case systems.Starved:
		p.stats.Starved++
	case systems.Natural:
		p.stats.Natural++
	}
}

// replace swaps the entity in slot i for a mutated child of a
// fitness-weighted parent. The dead entity still takes part in the draw.
func (p *Population) replace(i int) {
	var genome *neural.Genome
	if parent := p.FindWinner(); parent != nil {
		genome = parent.Clone()
	} else {
		genome = neural.NewRandomGenome(p.rng, p.params)
	}
	p.stats.Mutations += genome.Mutate(p.rng, p.params)

	p.world.RemoveEntity(p.slots[i])
	p.slots[i] = p.spawn(genome)
}

// sortByFitness ranks slots by food eaten, best first. Ties keep their
// previous order.
func (p *Population) sortByFitness() {
	sort.SliceStable(p.slots, func(a, b int) bool {
		return p.lifeMap.Get(p.slots[a]).FoodEaten > p.lifeMap.Get(p.slots[b]).FoodEaten
	})
}

// Len returns the population size.
func (p *Population) Len() int { return len(p.slots) }

// TickCount returns the number of completed ticks.
func (p *Population) TickCount() int64 { return p.tick }

// Stats returns the event counters. Callers may reset the windowed fields.
func (p *Population) Stats() *telemetry.Counters { return &p.stats }

// Bounds returns the world bounds provider.
func (p *Population) Bounds() systems.Bounds { return p.bounds }

// Config returns the configuration the population was built with.
func (p *Population) Config() *config.Config { return p.cfg }
