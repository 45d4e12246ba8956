package neural

import "math/rand"

// Axon is a weighted connection to a neuron slot in the next layer.
type Axon struct {
	Target   int     `json:"target"`   // Slot index in the next layer, in [0, NeuronsPerLayer)
	Strength float64 `json:"strength"` // Excitation added to the target on firing
}

// Gene encodes one neuron: its firing threshold, relaxation rate and outgoing axons.
type Gene struct {
	Axons      []Axon  `json:"axons"`
	Threshold  float64 `json:"threshold"`
	Relaxation float64 `json:"relaxation"`
}

// NewRandomGene creates a gene with uniformly random parameters.
func NewRandomGene(rng *rand.Rand, p Params) Gene {
	count := rng.Intn(p.MaxAxons) + 1
	axons := make([]Axon, 0, p.MaxAxons)
	for i := 0; i < count; i++ {
		axons = append(axons, randomAxon(rng, p))
	}

	threshold := p.fix((p.MaxTrigger-p.MinTrigger)*rng.Float64() + p.MinTrigger)
	relaxation := p.fix(1 - rng.Float64()*(1-p.MinRelaxation))

	return Gene{
		Axons:      axons,
		Threshold:  clamp(threshold, p.MinTrigger, p.MaxTrigger),
		Relaxation: clamp(relaxation, p.MinRelaxation, 1),
	}
}

func randomAxon(rng *rand.Rand, p Params) Axon {
	target := rng.Intn(p.NeuronsPerLayer)
	strength := p.fix(p.MaxStrength - rng.Float64()*p.MaxStrength*2)
	return Axon{
		Target:   target,
		Strength: clamp(strength, -p.MaxStrength, p.MaxStrength),
	}
}

// Clone returns a deep copy; the axon slice is never shared.
func (g Gene) Clone() Gene {
	axons := make([]Axon, len(g.Axons))
	copy(axons, g.Axons)
	return Gene{
		Axons:      axons,
		Threshold:  g.Threshold,
		Relaxation: g.Relaxation,
	}
}

// Mutate applies a single mutation event in place:
//   - 5%: the gene is replaced by a new random gene
//   - 10%, below MaxAxons: a random axon is appended
//   - 10%, above one axon: a random axon is removed
//   - otherwise one of threshold, relaxation, or an axon's target or strength changes
func (g *Gene) Mutate(rng *rand.Rand, p Params) {
	n := len(g.Axons)
	switch {
	case rng.Float64()*20 <= 1:
		*g = NewRandomGene(rng, p)
	case n < p.MaxAxons && rng.Float64()*10 <= 1:
		g.Axons = append(g.Axons, randomAxon(rng, p))
	case n > 1 && rng.Float64()*10 <= 1:
		i := rng.Intn(n)
		g.Axons = append(g.Axons[:i], g.Axons[i+1:]...)
	default:
		g.perturb(rng, p)
	}
}

// perturb picks uniformly among threshold, relaxation and every axon's
// target and strength, and changes that one value.
func (g *Gene) perturb(rng *rand.Rand, p Params) {
	choice := rng.Intn(2 + 2*len(g.Axons))
	delta := (rng.Float64()*2 - 1) * p.MutationDelta

	switch choice {
	case 0:
		g.Threshold = clamp(p.fix(g.Threshold+delta), p.MinTrigger, p.MaxTrigger)
	case 1:
		g.Relaxation = clamp(p.fix(g.Relaxation+delta*0.1), p.MinRelaxation, 1)
	default:
		a := &g.Axons[(choice-2)/2]
		if (choice-2)%2 == 0 {
			a.Target = rng.Intn(p.NeuronsPerLayer)
		} else {
			a.Strength = clamp(p.fix(a.Strength+delta), -p.MaxStrength, p.MaxStrength)
		}
	}
}

// Valid reports whether the gene satisfies its structural and range invariants.
func (g Gene) Valid(p Params) bool {
	if len(g.Axons) < 1 || len(g.Axons) > p.MaxAxons {
		return false
	}
	if g.Threshold < p.MinTrigger || g.Threshold > p.MaxTrigger {
		return false
	}
	if g.Relaxation < p.MinRelaxation || g.Relaxation > 1 {
		return false
	}
	for _, a := range g.Axons {
		if a.Target < 0 || a.Target >= p.NeuronsPerLayer {
			return false
		}
		if a.Strength < -p.MaxStrength || a.Strength > p.MaxStrength {
			return false
		}
	}
	return true
}
