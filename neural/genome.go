package neural

import (
	"fmt"
	"math/rand"
)

// Genome is the fixed-length gene sequence encoding a brain.
// Gene i drives neuron slot i%NeuronsPerLayer of layer i/NeuronsPerLayer.
type Genome struct {
	Genes []Gene `json:"genes"`
}

// NewRandomGenome creates a genome of fresh random genes.
func NewRandomGenome(rng *rand.Rand, p Params) *Genome {
	genes := make([]Gene, p.GenomeLength())
	for i := range genes {
		genes[i] = NewRandomGene(rng, p)
	}
	return &Genome{Genes: genes}
}

// Clone returns an independent deep copy of the genome.
func (g *Genome) Clone() *Genome {
	genes := make([]Gene, len(g.Genes))
	for i, gene := range g.Genes {
		genes[i] = gene.Clone()
	}
	return &Genome{Genes: genes}
}

// Mutate mutates floor(MutationRate * U[0,1)) genes picked with replacement.
// Returns the number of gene mutations applied, which may be zero.
func (g *Genome) Mutate(rng *rand.Rand, p Params) int {
	n := int(p.MutationRate * rng.Float64())
	for i := 0; i < n; i++ {
		g.Genes[rng.Intn(len(g.Genes))].Mutate(rng, p)
	}
	return n
}

// Validate checks the genome length and every gene's invariants.
func (g *Genome) Validate(p Params) error {
	if len(g.Genes) != p.GenomeLength() {
		return fmt.Errorf("genome has %d genes, want %d", len(g.Genes), p.GenomeLength())
	}
	for i, gene := range g.Genes {
		if !gene.Valid(p) {
			return fmt.Errorf("gene %d out of bounds: %+v", i, gene)
		}
	}
	return nil
}

// Layer returns the layer index gene i belongs to.
func (p Params) Layer(i int) int {
	return i / p.NeuronsPerLayer
}

// Slot returns the neuron slot gene i occupies within its layer.
func (p Params) Slot(i int) int {
	return i % p.NeuronsPerLayer
}
