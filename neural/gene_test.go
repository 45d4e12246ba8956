package neural

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/forage/config"
)

func init() {
	config.MustInit("")
}

func testParams() Params {
	return NewParams(config.Cfg())
}

func TestNewRandomGeneBounds(t *testing.T) {
	p := testParams()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		g := NewRandomGene(rng, p)
		if !g.Valid(p) {
			t.Fatalf("random gene %d violates bounds: %+v", i, g)
		}
	}
}

// TestNewRandomGeneFormula replays the construction formulas draw by draw
// against a second generator with the same seed.
func TestNewRandomGeneFormula(t *testing.T) {
	p := testParams()
	const seed = 20240601

	got := NewRandomGene(rand.New(rand.NewSource(seed)), p)

	ref := rand.New(rand.NewSource(seed))
	count := ref.Intn(p.MaxAxons) + 1
	if len(got.Axons) != count {
		t.Fatalf("axon count = %d, want %d", len(got.Axons), count)
	}
	for i := 0; i < count; i++ {
		target := ref.Intn(p.NeuronsPerLayer)
		strength := p.fix(p.MaxStrength - ref.Float64()*p.MaxStrength*2)
		if got.Axons[i].Target != target {
			t.Errorf("axon %d target = %d, want %d", i, got.Axons[i].Target, target)
		}
		if got.Axons[i].Strength != strength {
			t.Errorf("axon %d strength = %v, want %v", i, got.Axons[i].Strength, strength)
		}
	}
	threshold := p.fix((p.MaxTrigger-p.MinTrigger)*ref.Float64() + p.MinTrigger)
	relaxation := p.fix(1 - ref.Float64()*(1-p.MinRelaxation))
	if got.Threshold != threshold {
		t.Errorf("threshold = %v, want %v", got.Threshold, threshold)
	}
	if got.Relaxation != relaxation {
		t.Errorf("relaxation = %v, want %v", got.Relaxation, relaxation)
	}
}

func TestFixPrecision(t *testing.T) {
	p := testParams()
	tests := []struct {
		in, want float64
	}{
		{1.234, 1.23},
		{1.236, 1.24},
		{-3.456, -3.46},
		{12, 12},
		{-0.004, 0},
	}
	for _, tt := range tests {
		if got := p.fix(tt.in); got != tt.want {
			t.Errorf("fix(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGeneMutateKeepsInvariants(t *testing.T) {
	p := testParams()
	rng := rand.New(rand.NewSource(2))

	for trial := 0; trial < 50; trial++ {
		g := NewRandomGene(rng, p)
		for i := 0; i < 500; i++ {
			g.Mutate(rng, p)
			if !g.Valid(p) {
				t.Fatalf("trial %d mutation %d left gene out of bounds: %+v", trial, i, g)
			}
		}
	}
}

func TestGeneMutateChangesStructure(t *testing.T) {
	p := testParams()
	rng := rand.New(rand.NewSource(3))

	grew, shrank := false, false
	for i := 0; i < 2000 && !(grew && shrank); i++ {
		g := Gene{
			Axons:      []Axon{{Target: 0, Strength: 1}, {Target: 1, Strength: 2}},
			Threshold:  10,
			Relaxation: 0.5,
		}
		g.Mutate(rng, p)
		switch len(g.Axons) {
		case 3:
			grew = true
		case 1:
			// Either a removal or a full replacement; both leave a dense slice
			shrank = true
		}
	}
	if !grew {
		t.Error("no mutation appended an axon")
	}
	if !shrank {
		t.Error("no mutation removed an axon")
	}
}

func TestGeneMutateSingleAxonNeverEmpties(t *testing.T) {
	p := testParams()
	rng := rand.New(rand.NewSource(4))

	for i := 0; i < 5000; i++ {
		g := Gene{Axons: []Axon{{Target: 2, Strength: -3}}, Threshold: 6, Relaxation: 0.9}
		g.Mutate(rng, p)
		if len(g.Axons) == 0 {
			t.Fatal("mutation removed the last axon")
		}
	}
}

func TestGeneMutateMaxAxonsNeverGrows(t *testing.T) {
	p := testParams()
	rng := rand.New(rand.NewSource(5))

	for i := 0; i < 5000; i++ {
		g := Gene{Threshold: 6, Relaxation: 0.9}
		for j := 0; j < p.MaxAxons; j++ {
			g.Axons = append(g.Axons, Axon{Target: j % p.NeuronsPerLayer, Strength: 1})
		}
		g.Mutate(rng, p)
		if len(g.Axons) > p.MaxAxons {
			t.Fatalf("gene grew to %d axons, max %d", len(g.Axons), p.MaxAxons)
		}
	}
}

func TestGeneCloneIsDeep(t *testing.T) {
	src := Gene{Axons: []Axon{{Target: 1, Strength: 4}}, Threshold: 7, Relaxation: 0.8}
	dst := src.Clone()

	dst.Axons[0].Strength = -9
	dst.Axons = append(dst.Axons, Axon{Target: 3, Strength: 1})
	dst.Threshold = 19

	if src.Axons[0].Strength != 4 {
		t.Errorf("clone aliased axon slice: source strength = %v", src.Axons[0].Strength)
	}
	if len(src.Axons) != 1 {
		t.Errorf("source axon count = %d, want 1", len(src.Axons))
	}
	if src.Threshold != 7 {
		t.Errorf("source threshold = %v, want 7", src.Threshold)
	}
}
