package neural

import (
	"math"
	"math/rand"
	"testing"
)

// uniformGenome builds a genome whose neurons never fire on their own:
// maximum threshold, the given relaxation, and one zero-strength axon to slot 0.
func uniformGenome(p Params, relaxation float64) *Genome {
	genes := make([]Gene, p.GenomeLength())
	for i := range genes {
		genes[i] = Gene{
			Axons:      []Axon{{Target: 0, Strength: 0}},
			Threshold:  p.MaxTrigger,
			Relaxation: relaxation,
		}
	}
	return &Genome{Genes: genes}
}

func TestNewBrainTopology(t *testing.T) {
	p := testParams()
	g := NewRandomGenome(rand.New(rand.NewSource(1)), p)
	b := NewBrain(g, p)

	if len(b.Layers) != p.Layers {
		t.Fatalf("layers = %d, want %d", len(b.Layers), p.Layers)
	}
	for i, layer := range b.Layers {
		if len(layer) != p.NeuronsPerLayer {
			t.Errorf("layer %d has %d neurons, want %d", i, len(layer), p.NeuronsPerLayer)
		}
		for j, n := range layer {
			gene := g.Genes[i*p.NeuronsPerLayer+j]
			if n.Threshold != gene.Threshold || n.Relaxation != gene.Relaxation {
				t.Errorf("neuron %d/%d does not mirror its gene", i, j)
			}
			if n.Excitation != 0 {
				t.Errorf("neuron %d/%d starts excited: %v", i, j, n.Excitation)
			}
		}
	}
	if b.NeuronCount() != p.GenomeLength() {
		t.Errorf("neuron count = %d, want %d", b.NeuronCount(), p.GenomeLength())
	}
}

func TestNewBrainDoesNotAliasGenome(t *testing.T) {
	p := testParams()
	g := NewRandomGenome(rand.New(rand.NewSource(2)), p)
	b := NewBrain(g, p)

	before := b.Layers[0][0].Axons[0].Strength
	g.Genes[0].Axons[0].Strength = before + 1

	if b.Layers[0][0].Axons[0].Strength != before {
		t.Error("brain shares axon storage with its genome")
	}
}

func TestNewBrainPanics(t *testing.T) {
	p := testParams()

	tests := []struct {
		name   string
		genome func() *Genome
	}{
		{"short genome", func() *Genome {
			g := uniformGenome(p, 0.5)
			g.Genes = g.Genes[:3]
			return g
		}},
		{"target out of range", func() *Genome {
			g := uniformGenome(p, 0.5)
			g.Genes[5].Axons[0].Target = p.NeuronsPerLayer
			return g
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			NewBrain(tt.genome(), p)
		})
	}
}

func TestThinkPropagatesWithinOneStep(t *testing.T) {
	p := testParams()
	g := uniformGenome(p, 0.5)
	// A chain from input slot 0 through hidden slot 0 to the left-turn motor
	for layer := 0; layer < p.Layers; layer++ {
		gene := &g.Genes[layer*p.NeuronsPerLayer]
		gene.Threshold = p.MinTrigger
		gene.Axons = []Axon{{Target: 0, Strength: p.MaxStrength}}
	}
	b := NewBrain(g, p)

	var counts MotorCounts
	b.Think([]float64{p.MaxStrength, 0, 0, 0}, 1, &counts)
	if counts[LeftTurn] != 1 {
		t.Fatalf("left turn count = %d after one step, want 1", counts[LeftTurn])
	}

	counts.Reset()
	b.Think([]float64{p.MaxStrength, 0, 0, 0}, 5, &counts)
	if counts[LeftTurn] != 5 {
		t.Errorf("left turn count = %d after five steps, want 5", counts[LeftTurn])
	}
	if counts[Accelerate] != 0 || counts[RightTurn] != 0 || counts[Decelerate] != 0 {
		t.Errorf("unexpected motor activity: %v", counts)
	}
}

func TestThinkMotorMapping(t *testing.T) {
	p := testParams()
	motors := []Motor{LeftTurn, Accelerate, RightTurn, Decelerate}

	for slot, motor := range motors {
		t.Run(motor.String(), func(t *testing.T) {
			g := uniformGenome(p, 0.5)
			// Input slot 0 feeds hidden slot 0, which feeds output slot `slot`
			g.Genes[0].Threshold = p.MinTrigger
			g.Genes[0].Axons = []Axon{{Target: 0, Strength: p.MaxStrength}}
			hidden := (p.Layers - 2) * p.NeuronsPerLayer
			g.Genes[hidden].Threshold = p.MinTrigger
			g.Genes[hidden].Axons = []Axon{{Target: slot, Strength: p.MaxStrength}}
			out := (p.Layers - 1) * p.NeuronsPerLayer
			g.Genes[out+slot].Threshold = p.MinTrigger

			if p.Layers != 3 {
				t.Skip("mapping test assumes three layers")
			}

			b := NewBrain(g, p)
			var counts MotorCounts
			b.Think([]float64{p.MaxStrength}, 1, &counts)
			if counts[motor] != 1 {
				t.Errorf("%s count = %d, want 1 (counts %v)", motor, counts[motor], counts)
			}
		})
	}
}

func TestThinkRelaxation(t *testing.T) {
	p := testParams()
	b := NewBrain(uniformGenome(p, 0.5), p)

	var counts MotorCounts
	b.Think([]float64{3}, 1, &counts)
	if got := b.Layers[0][0].Excitation; got != 1.5 {
		t.Errorf("excitation after one step = %v, want 1.5", got)
	}

	b.Think([]float64{3}, 1, &counts)
	if got := b.Layers[0][0].Excitation; got != 2.25 {
		t.Errorf("excitation after two steps = %v, want 2.25", got)
	}
}

func TestThinkSnapsSmallExcitation(t *testing.T) {
	p := testParams()
	b := NewBrain(uniformGenome(p, p.MinRelaxation), p)

	var counts MotorCounts
	b.Think([]float64{0.5}, 1, &counts)
	if got := b.Layers[0][0].Excitation; got != 0 {
		t.Errorf("excitation = %v, want snap to 0", got)
	}
}

func TestThinkIgnoresNonFiniteInputs(t *testing.T) {
	p := testParams()
	b := NewBrain(uniformGenome(p, 1), p)

	var counts MotorCounts
	b.Think([]float64{math.NaN(), math.Inf(1), math.Inf(-1), 2}, 3, &counts)

	for j := 0; j < 3; j++ {
		if got := b.Layers[0][j].Excitation; got != 0 {
			t.Errorf("input neuron %d excitation = %v, want 0", j, got)
		}
	}
	if got := b.Layers[0][3].Excitation; got != 6 {
		t.Errorf("input neuron 3 excitation = %v, want 6", got)
	}
}

func TestThinkInhibitionFloorsAtZero(t *testing.T) {
	p := testParams()
	g := uniformGenome(p, 1)
	g.Genes[0].Threshold = p.MinTrigger
	g.Genes[0].Axons = []Axon{{Target: 1, Strength: -p.MaxStrength}}
	b := NewBrain(g, p)

	var counts MotorCounts
	b.Think([]float64{p.MaxStrength}, 4, &counts)

	for j, n := range b.Layers[1] {
		if n.Excitation < 0 {
			t.Errorf("hidden neuron %d excitation went negative: %v", j, n.Excitation)
		}
	}
}

func TestThinkDeterministic(t *testing.T) {
	p := testParams()
	g := NewRandomGenome(rand.New(rand.NewSource(42)), p)

	run := func() MotorCounts {
		b := NewBrain(g, p)
		var counts MotorCounts
		for tick := 0; tick < 10; tick++ {
			b.Think([]float64{6, 3, 0, 9}, 64, &counts)
		}
		return counts
	}

	if a, b := run(), run(); a != b {
		t.Errorf("same genome and inputs produced %v then %v", a, b)
	}
}
